// Package runner drives one process's pass over a selected work set:
// claim, process, record the terminal outcome. It is single threaded on
// purpose; parallelism comes from running more instances against the same
// progress file, not from goroutines inside one run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"galley/internal/catalog"
	"galley/internal/logging"
	"galley/internal/progress"
)

// Processor performs the per-item work after a claim is granted. A nil
// return marks the item done; an error (or panic) marks it failed.
type Processor interface {
	Process(ctx context.Context, item catalog.Item) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, item catalog.Item) error

func (f ProcessorFunc) Process(ctx context.Context, item catalog.Item) error {
	return f(ctx, item)
}

// Summary accumulates per-run outcome counts for the end-of-run report.
type Summary struct {
	Processed int
	Failed    int
	Skipped   int
}

// Total returns the number of items attempted.
func (s Summary) Total() int {
	return s.Processed + s.Failed + s.Skipped
}

// Runner iterates a work list in catalog order.
type Runner struct {
	coordinator *progress.Coordinator
	store       *progress.Store
	processor   Processor
	logger      *slog.Logger
}

// New constructs a runner. All dependencies are required except the logger.
func New(coordinator *progress.Coordinator, store *progress.Store, processor Processor, logger *slog.Logger) (*Runner, error) {
	if coordinator == nil || store == nil || processor == nil {
		return nil, errors.New("runner requires coordinator, store, and processor")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{coordinator: coordinator, store: store, processor: processor, logger: logger}, nil
}

// Run attempts every item in order. A refused claim is expected contention,
// not an error: the conflicting status is reported and the item skipped.
// Processing failures are recorded per item and never abort the batch;
// store-level failures do abort, because without a reliable claim mechanism
// continuing could double-process items.
func (r *Runner) Run(ctx context.Context, items []catalog.Item) (Summary, error) {
	var summary Summary
	total := len(items)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		granted, err := r.coordinator.Claim(ctx, item.Slug)
		if err != nil {
			return summary, err
		}
		if !granted {
			summary.Skipped++
			r.logger.Info("skipped",
				logging.String("slug", item.Slug),
				logging.String("status", r.conflictStatus(ctx, item.Slug)),
				logging.String("progress", fmt.Sprintf("%d/%d", i+1, total)),
			)
			continue
		}

		r.logger.Info("claimed",
			logging.String("slug", item.Slug),
			logging.Int("tier", item.Tier),
			logging.String("progress", fmt.Sprintf("%d/%d", i+1, total)),
		)

		// Terminal outcomes for a claimed item are recorded even when the
		// run context was cancelled mid-processing; otherwise completed
		// work would be stranded in_progress until an operator reset.
		markCtx := context.WithoutCancel(ctx)

		if err := r.invoke(ctx, item); err != nil {
			if markErr := r.coordinator.MarkFailed(markCtx, item.Slug); markErr != nil {
				return summary, markErr
			}
			summary.Failed++
			r.logger.Warn("failed", logging.String("slug", item.Slug), logging.Error(err))
			continue
		}

		if err := r.coordinator.MarkDone(markCtx, item.Slug); err != nil {
			return summary, err
		}
		summary.Processed++
		r.logger.Info("done", logging.String("slug", item.Slug))
	}

	return summary, nil
}

// invoke shields the run from a panicking processor; the panic becomes a
// recorded failure for that item only.
func (r *Runner) invoke(ctx context.Context, item catalog.Item) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("processor panic: %v", rec)
		}
	}()
	return r.processor.Process(ctx, item)
}

// conflictStatus re-reads the store so the skip log names what blocked the
// claim. A read failure here only degrades the log line.
func (r *Runner) conflictStatus(ctx context.Context, slug string) string {
	record, ok, err := r.store.Get(ctx, slug)
	if err != nil || !ok {
		return "unknown"
	}
	return string(record.Status)
}
