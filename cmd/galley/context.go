package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"galley/internal/catalog"
	"galley/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadCatalog reads the catalog named by the active config, applying tier
// overrides when an overrides file is configured.
func (c *commandContext) loadCatalog() ([]catalog.Item, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	overrides, err := catalog.LoadTierOverrides(cfg.Paths.TierOverrides)
	if err != nil {
		return nil, fmt.Errorf("load tier overrides: %w", err)
	}
	items, err := catalog.Load(cfg.Paths.CatalogPath, overrides, cfg.Generation.Product)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
