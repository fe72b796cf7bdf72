package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGeneration()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProgressPath) == "" {
		c.Paths.ProgressPath = defaultProgressPath
	}
	if c.Paths.ProgressPath, err = expandPath(c.Paths.ProgressPath); err != nil {
		return fmt.Errorf("paths.progress_path: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ResearchDir) != "" {
		if c.Paths.ResearchDir, err = expandPath(c.Paths.ResearchDir); err != nil {
			return fmt.Errorf("paths.research_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.TierOverrides) != "" {
		if c.Paths.TierOverrides, err = expandPath(c.Paths.TierOverrides); err != nil {
			return fmt.Errorf("paths.tier_overrides: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeGeneration() {
	if strings.TrimSpace(c.Generation.APIKey) == "" {
		if envKey, ok := os.LookupEnv("GALLEY_API_KEY"); ok {
			c.Generation.APIKey = strings.TrimSpace(envKey)
		}
	}
	if strings.TrimSpace(c.Generation.BaseURL) == "" {
		c.Generation.BaseURL = defaultGenerationBaseURL
	}
	if strings.TrimSpace(c.Generation.Model) == "" {
		c.Generation.Model = defaultGenerationModel
	}
	if strings.TrimSpace(c.Generation.Product) == "" {
		c.Generation.Product = defaultGenerationProduct
	}
	if c.Generation.TimeoutSeconds <= 0 {
		c.Generation.TimeoutSeconds = defaultGenerationTimeout
	}
	if c.Generation.RetryAttempts <= 0 {
		c.Generation.RetryAttempts = defaultGenerationRetries
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
