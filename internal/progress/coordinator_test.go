package progress_test

import (
	"context"
	"sync"
	"testing"

	"galley/internal/identity"
	"galley/internal/progress"
	"galley/internal/testsupport"
)

func TestClaimLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first := testsupport.MustCoordinator(t, cfg, identity.Instance("100-aaaa"))
	second := testsupport.MustCoordinator(t, cfg, identity.Instance("200-bbbb"))

	granted, err := first.Claim(ctx, "zxing-net")
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if !granted {
		t.Fatal("expected first claim to be granted")
	}

	store := testsupport.MustOpenStore(t, cfg)
	record, ok, err := store.Get(ctx, "zxing-net")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if record.Status != progress.StatusInProgress {
		t.Fatalf("expected in_progress record, got %s", record.Status)
	}
	if record.Owner != "100-aaaa" {
		t.Fatalf("expected owner 100-aaaa, got %q", record.Owner)
	}

	granted, err = second.Claim(ctx, "zxing-net")
	if err != nil {
		t.Fatalf("second Claim failed: %v", err)
	}
	if granted {
		t.Fatal("expected competing claim to be refused")
	}

	if err := first.MarkDone(ctx, "zxing-net"); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	granted, err = second.Claim(ctx, "zxing-net")
	if err != nil {
		t.Fatalf("Claim after done failed: %v", err)
	}
	if granted {
		t.Fatal("expected claim on done item to be refused")
	}
}

func TestFailedItemIsReclaimable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first := testsupport.MustCoordinator(t, cfg, identity.Instance("100-aaaa"))
	second := testsupport.MustCoordinator(t, cfg, identity.Instance("200-bbbb"))

	if granted, err := first.Claim(ctx, "barcodelib"); err != nil || !granted {
		t.Fatalf("expected claim granted, granted=%v err=%v", granted, err)
	}
	if err := first.MarkFailed(ctx, "barcodelib"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	granted, err := second.Claim(ctx, "barcodelib")
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if !granted {
		t.Fatal("expected failed item to be claimable by another instance")
	}

	store := testsupport.MustOpenStore(t, cfg)
	record, _, err := store.Get(ctx, "barcodelib")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Owner != "200-bbbb" {
		t.Fatalf("expected new owner after reclaim, got %q", record.Owner)
	}
}

func TestAbandonedClaimStaysRefused(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	// Simulates a killed process: claim recorded, no terminal write follows.
	dead := testsupport.MustCoordinator(t, cfg, identity.Instance("100-dead"))
	if granted, err := dead.Claim(ctx, "aspose-barcode"); err != nil || !granted {
		t.Fatalf("expected claim granted, granted=%v err=%v", granted, err)
	}

	next := testsupport.MustCoordinator(t, cfg, identity.Instance("200-next"))
	granted, err := next.Claim(ctx, "aspose-barcode")
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if granted {
		t.Fatal("expected abandoned in_progress claim to stay refused until reset")
	}
}

func TestTerminalWriteHasNoOwnershipCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	owner := testsupport.MustCoordinator(t, cfg, identity.Instance("100-aaaa"))
	other := testsupport.MustCoordinator(t, cfg, identity.Instance("200-bbbb"))

	if granted, err := owner.Claim(ctx, "zxing-net"); err != nil || !granted {
		t.Fatalf("expected claim granted, granted=%v err=%v", granted, err)
	}
	if err := other.MarkDone(ctx, "zxing-net"); err != nil {
		t.Fatalf("MarkDone from non-owner failed: %v", err)
	}

	store := testsupport.MustOpenStore(t, cfg)
	record, _, err := store.Get(ctx, "zxing-net")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Status != progress.StatusDone || record.Owner != "200-bbbb" {
		t.Fatalf("expected overwrite by other instance, got %+v", record)
	}
}

func TestConcurrentClaimsSingleWinner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	const claimants = 8
	coordinators := make([]*progress.Coordinator, claimants)
	for i := range coordinators {
		coordinators[i] = testsupport.MustCoordinator(t, cfg, identity.New())
	}

	var wg sync.WaitGroup
	grants := make(chan bool, claimants)
	for _, coordinator := range coordinators {
		wg.Add(1)
		go func(c *progress.Coordinator) {
			defer wg.Done()
			granted, err := c.Claim(ctx, "contested")
			if err != nil {
				t.Errorf("Claim failed: %v", err)
				return
			}
			grants <- granted
		}(coordinator)
	}
	wg.Wait()
	close(grants)

	winners := 0
	for granted := range grants {
		if granted {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one granted claim, got %d", winners)
	}

	store := testsupport.MustOpenStore(t, cfg)
	record, ok, err := store.Get(ctx, "contested")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if record.Status != progress.StatusInProgress {
		t.Fatalf("losers must observe the winner's status, got %s", record.Status)
	}
}

func TestSeparateConfigsShareOneProgressFile(t *testing.T) {
	// Two instances with otherwise unrelated configurations coordinate as
	// long as they point at the same progress file.
	ctx := context.Background()
	first := testsupport.NewConfig(t)
	second := testsupport.NewConfig(t, testsupport.WithProgressPath(first.Paths.ProgressPath))

	one := testsupport.MustCoordinator(t, first, identity.Instance("100-aaaa"))
	two := testsupport.MustCoordinator(t, second, identity.Instance("200-bbbb"))

	if granted, err := one.Claim(ctx, "shared"); err != nil || !granted {
		t.Fatalf("expected claim granted, granted=%v err=%v", granted, err)
	}
	granted, err := two.Claim(ctx, "shared")
	if err != nil {
		t.Fatalf("Claim failed: %v", err)
	}
	if granted {
		t.Fatal("expected claim through the shared file to be refused")
	}
}

func TestClaimRequiresSlug(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	coordinator := testsupport.MustCoordinator(t, cfg, identity.New())

	if _, err := coordinator.Claim(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank slug")
	}
	if err := coordinator.MarkDone(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank slug on terminal write")
	}
}
