// Package testsupport provides shared helpers for package tests: temp-dir
// configs, progress stores, and catalog fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"galley/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogPath = filepath.Join(base, "catalog.md")
	cfg.Paths.ProgressPath = filepath.Join(base, "progress.json")
	cfg.Paths.OutputDir = filepath.Join(base, "content")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ResearchDir = filepath.Join(base, "research")
	cfg.Generation.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithProgressPath points the config at a specific progress file, letting
// multiple configs share one store the way separate processes would.
func WithProgressPath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.ProgressPath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.ProgressPath)
}
