package testsupport

import (
	"testing"

	"galley/internal/config"
	"galley/internal/identity"
	"galley/internal/progress"
)

// MustOpenStore opens a progress.Store for tests.
func MustOpenStore(t testing.TB, cfg *config.Config) *progress.Store {
	t.Helper()

	store, err := progress.Open(cfg)
	if err != nil {
		t.Fatalf("progress.Open: %v", err)
	}
	return store
}

// MustCoordinator builds a coordinator over a fresh store for cfg.
func MustCoordinator(t testing.TB, cfg *config.Config, instance identity.Instance) *progress.Coordinator {
	t.Helper()

	coordinator, err := progress.NewCoordinator(MustOpenStore(t, cfg), instance)
	if err != nil {
		t.Fatalf("progress.NewCoordinator: %v", err)
	}
	return coordinator
}
