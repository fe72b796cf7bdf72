package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"galley/internal/identity"
)

// Coordinator enforces the at-most-one-active-claim rule per slug. It is the
// only component that writes claim records.
type Coordinator struct {
	store    *Store
	instance identity.Instance
	now      func() time.Time
}

// NewCoordinator builds a coordinator bound to one process instance.
func NewCoordinator(store *Store, instance identity.Instance) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("coordinator requires a store")
	}
	if strings.TrimSpace(instance.String()) == "" {
		return nil, errors.New("coordinator requires an instance identity")
	}
	return &Coordinator{store: store, instance: instance, now: time.Now}, nil
}

// Claim attempts to reserve slug for this instance. Inside the store's
// exclusive critical section: an existing in_progress or done record refuses
// the claim with no write; an absent or failed record grants it. Failed
// items stay claimable on purpose so a later run can retry them instead of
// leaving them permanently stuck.
func (c *Coordinator) Claim(ctx context.Context, slug string) (bool, error) {
	if strings.TrimSpace(slug) == "" {
		return false, errors.New("claim: slug required")
	}
	granted, err := c.store.mutate(ctx, func(records map[string]Record) bool {
		if existing, ok := records[slug]; ok {
			switch existing.Status {
			case StatusInProgress, StatusDone:
				return false
			}
		}
		records[slug] = c.record(StatusInProgress)
		return true
	})
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", slug, err)
	}
	return granted, nil
}

// MarkDone records a successful terminal outcome for slug.
func (c *Coordinator) MarkDone(ctx context.Context, slug string) error {
	return c.mark(ctx, slug, StatusDone)
}

// MarkFailed records a failed terminal outcome for slug. The item becomes
// claimable again by a subsequent run.
func (c *Coordinator) MarkFailed(ctx context.Context, slug string) error {
	return c.mark(ctx, slug, StatusFailed)
}

// mark overwrites the record unconditionally. There is no ownership check:
// instances sharing a progress file are cooperating under one operator, and
// only the claiming process transitions its own claims in normal operation.
func (c *Coordinator) mark(ctx context.Context, slug string, status Status) error {
	if strings.TrimSpace(slug) == "" {
		return fmt.Errorf("mark %s: slug required", status)
	}
	_, err := c.store.mutate(ctx, func(records map[string]Record) bool {
		records[slug] = c.record(status)
		return true
	})
	if err != nil {
		return fmt.Errorf("mark %s %s: %w", slug, status, err)
	}
	return nil
}

func (c *Coordinator) record(status Status) Record {
	return Record{
		Status:    status,
		Owner:     c.instance.String(),
		UpdatedAt: c.now().UTC(),
	}
}
