package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTier is the lowest priority group, assigned when nothing else
// classifies an item.
const DefaultTier = 3

// TierOverrides assigns slugs to priority groups, taking precedence over the
// catalog's own Tier field.
type TierOverrides struct {
	Tier1 []string `yaml:"tier1"`
	Tier2 []string `yaml:"tier2"`
	Tier3 []string `yaml:"tier3"`
}

// LoadTierOverrides reads the overrides file. An empty path or a missing
// file yields nil overrides, which resolve purely from the catalog.
func LoadTierOverrides(path string) (*TierOverrides, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tier overrides: %w", err)
	}
	var overrides TierOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse tier overrides: %w", err)
	}
	return &overrides, nil
}

// Resolve determines the tier for slug: overrides first, the catalog's raw
// Tier field second, DefaultTier last.
func (t *TierOverrides) Resolve(slug, rawTier string) int {
	if t != nil {
		groups := [][]string{t.Tier1, t.Tier2, t.Tier3}
		for i, slugs := range groups {
			for _, candidate := range slugs {
				if candidate == slug {
					return i + 1
				}
			}
		}
	}

	lowered := strings.ToLower(rawTier)
	for tier := 1; tier <= 3; tier++ {
		label := strconv.Itoa(tier)
		if strings.Contains(lowered, "tier "+label) || strings.TrimSpace(lowered) == label {
			return tier
		}
	}
	return DefaultTier
}
