package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"galley/internal/config"
)

func TestDefaultNormalizes(t *testing.T) {
	cfg := config.Default()
	if cfg.Paths.CatalogPath == "" {
		t.Fatal("expected default catalog path")
	}
	if cfg.Generation.RetryAttempts <= 0 {
		t.Fatal("expected positive default retry attempts")
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected default log format %q", cfg.Logging.Format)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Generation.Model == "" {
		t.Fatal("expected default model")
	}
	if !filepath.IsAbs(cfg.Paths.ProgressPath) {
		t.Fatalf("expected progress path expanded, got %q", cfg.Paths.ProgressPath)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`catalog_path = "catalog.md"`,
		`progress_path = "state/progress.json"`,
		`output_dir = "out"`,
		`log_dir = "logs"`,
		"[generation]",
		`api_key = "secret"`,
		`retry_attempts = 7`,
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Generation.APIKey != "secret" {
		t.Fatalf("unexpected api key %q", cfg.Generation.APIKey)
	}
	if cfg.Generation.RetryAttempts != 7 {
		t.Fatalf("unexpected retry attempts %d", cfg.Generation.RetryAttempts)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected format normalized to json, got %q", cfg.Logging.Format)
	}
	if !filepath.IsAbs(cfg.Paths.CatalogPath) {
		t.Fatalf("expected catalog path expanded, got %q", cfg.Paths.CatalogPath)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("GALLEY_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Generation.APIKey != "env-key" {
		t.Fatalf("expected env fallback, got %q", cfg.Generation.APIKey)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.ProgressPath = filepath.Join(dir, "state", "progress.json")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, created := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, filepath.Join(dir, "state")} {
		info, err := os.Stat(created)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", created, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("expected sample config to contain [paths] section")
	}
}
