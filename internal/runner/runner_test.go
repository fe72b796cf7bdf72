package runner_test

import (
	"context"
	"errors"
	"testing"

	"galley/internal/catalog"
	"galley/internal/identity"
	"galley/internal/progress"
	"galley/internal/runner"
	"galley/internal/testsupport"
)

func workSet(slugs ...string) []catalog.Item {
	items := make([]catalog.Item, 0, len(slugs))
	for _, slug := range slugs {
		items = append(items, catalog.Item{Name: slug, Slug: slug, Tier: 1})
	}
	return items
}

func TestRunProcessesFreshItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	var processed []string
	proc := runner.ProcessorFunc(func(_ context.Context, item catalog.Item) error {
		processed = append(processed, item.Slug)
		return nil
	})
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	summary, err := r.Run(context.Background(), workSet("a", "b", "c"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Processed != 3 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(processed) != 3 || processed[0] != "a" || processed[2] != "c" {
		t.Fatalf("expected list-order processing, got %v", processed)
	}

	records, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	for _, slug := range []string{"a", "b", "c"} {
		if records[slug].Status != progress.StatusDone {
			t.Fatalf("expected %s done, got %s", slug, records[slug].Status)
		}
	}
}

func TestRerunOverDoneItemsInvokesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	invocations := 0
	proc := runner.ProcessorFunc(func(context.Context, catalog.Item) error {
		invocations++
		return nil
	})
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	items := workSet("a", "b")
	if _, err := r.Run(context.Background(), items); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	invocations = 0

	summary, err := r.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if invocations != 0 {
		t.Fatalf("expected zero processor invocations on re-run, got %d", invocations)
	}
	if summary.Skipped != len(items) || summary.Processed != 0 {
		t.Fatalf("expected all skipped, got %+v", summary)
	}
}

func TestFailureIsRecordedAndRetriedNextRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	attempts := 0
	proc := runner.ProcessorFunc(func(_ context.Context, item catalog.Item) error {
		attempts++
		if attempts == 1 {
			return errors.New("provider unavailable")
		}
		return nil
	})
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	items := workSet("flaky")
	summary, err := r.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Failed != 1 || attempts != 1 {
		t.Fatalf("expected single failure with no in-run retry, summary=%+v attempts=%d", summary, attempts)
	}

	record, _, err := store.Get(context.Background(), "flaky")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Status != progress.StatusFailed {
		t.Fatalf("expected failed record, got %s", record.Status)
	}

	// A fresh run reclaims the failed item.
	summary, err = r.Run(context.Background(), items)
	if err != nil {
		t.Fatalf("retry Run failed: %v", err)
	}
	if summary.Processed != 1 || attempts != 2 {
		t.Fatalf("expected retry to succeed, summary=%+v attempts=%d", summary, attempts)
	}
}

func TestPanicMarksItemFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	proc := runner.ProcessorFunc(func(_ context.Context, item catalog.Item) error {
		if item.Slug == "boom" {
			panic("template exploded")
		}
		return nil
	})
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	summary, err := r.Run(context.Background(), workSet("boom", "after"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Failed != 1 || summary.Processed != 1 {
		t.Fatalf("expected panic isolated to one item, got %+v", summary)
	}

	record, _, err := store.Get(context.Background(), "boom")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Status != progress.StatusFailed {
		t.Fatalf("expected failed record after panic, got %s", record.Status)
	}
}

func TestContentionSkipsItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Another instance already holds one item and finished another.
	other, err := progress.NewCoordinator(store, identity.Instance("999-other"))
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	ctx := context.Background()
	if _, err := other.Claim(ctx, "held"); err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if _, err := other.Claim(ctx, "finished"); err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if err := other.MarkDone(ctx, "finished"); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	proc := runner.ProcessorFunc(func(context.Context, catalog.Item) error { return nil })
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	summary, err := r.Run(ctx, workSet("held", "finished", "open"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Skipped != 2 || summary.Processed != 1 {
		t.Fatalf("expected 2 skipped and 1 processed, got %+v", summary)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	coordinator, err := progress.NewCoordinator(store, identity.New())
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	proc := runner.ProcessorFunc(func(context.Context, catalog.Item) error {
		cancel()
		return nil
	})
	r, err := runner.New(coordinator, store, proc, nil)
	if err != nil {
		t.Fatalf("runner.New failed: %v", err)
	}

	summary, err := r.Run(ctx, workSet("a", "b"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected one item finished before cancel, got %+v", summary)
	}

	// The completed item's terminal status must survive the cancellation;
	// only the unstarted item stays unclaimed.
	record, ok, getErr := store.Get(context.Background(), "a")
	if getErr != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, getErr)
	}
	if record.Status != progress.StatusDone {
		t.Fatalf("expected done recorded despite cancel, got %s", record.Status)
	}
	if _, ok, _ := store.Get(context.Background(), "b"); ok {
		t.Fatal("expected second item untouched after cancel")
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := runner.New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
