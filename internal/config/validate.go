package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Generation credentials are
// deliberately not required here; commands that never call the provider
// (list, status, reset) must work without a key.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		return errors.New("paths.catalog_path is required")
	}
	if strings.TrimSpace(c.Paths.ProgressPath) == "" {
		return errors.New("paths.progress_path is required")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir is required")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	return nil
}
