package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Item is one work item parsed from the catalog. Slug and Tier are the only
// fields the claim machinery reads; the rest is metadata for the generation
// pipeline.
type Item struct {
	Name        string
	Slug        string
	Tier        int
	Category    string
	Website     string
	NuGet       string
	License     string
	Description string
	KnownIssues []string
	Advantages  []string
	APIMapping  []string

	rawTier string
}

var entryHeadingPattern = regexp.MustCompile(`^### \d+\.\s+(.+)$`)

// Load reads and parses the catalog file, resolving tiers through the
// provided overrides (which may be nil). Entries naming product are
// excluded from the work set.
func Load(path string, overrides *TierOverrides, product string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	items := Parse(string(data), product)
	for i := range items {
		items[i].Tier = overrides.Resolve(items[i].Slug, items[i].rawTier)
	}
	return items, nil
}

// Parse extracts items from catalog markdown. Entries mentioning the
// reference product itself are skipped; they describe the comparison
// baseline, not work to process.
func Parse(content, product string) []Item {
	type section int
	const (
		sectionNone section = iota
		sectionKnownIssues
		sectionAdvantages
		sectionAPIMapping
	)

	var (
		items    []Item
		current  *Item
		category string
		active   section
	)

	numberedPattern := regexp.MustCompile(`^\d+\.\s+`)

	flush := func() {
		if current != nil && current.Name != "" {
			current.Category = category
			items = append(items, *current)
		}
		current = nil
	}

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)

		if strings.HasPrefix(line, "## Summary") {
			break
		}

		if strings.HasPrefix(line, "## Category") {
			if idx := strings.Index(line, ":"); idx >= 0 {
				category = strings.TrimSpace(line[idx+1:])
			}
			active = sectionNone
			continue
		}

		if strings.HasPrefix(line, "### ") {
			flush()
			active = sectionNone
			if strings.Contains(line, "Reference Standard") {
				continue
			}
			if product != "" && strings.Contains(line, product) {
				continue
			}
			match := entryHeadingPattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			current = &Item{Name: name, Slug: Slugify(name)}
			continue
		}

		switch {
		case strings.Contains(line, "**Known Issues:**"):
			active = sectionKnownIssues
			continue
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "Advantages:**"):
			active = sectionAdvantages
			continue
		case strings.Contains(line, "**API Mapping Hints:**"):
			active = sectionAPIMapping
			continue
		case strings.HasPrefix(line, "---"):
			active = sectionNone
			continue
		}

		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "- **Website:**"):
			current.Website = fieldValue(line)
		case strings.HasPrefix(line, "- **NuGet:**"):
			current.NuGet = fieldValue(line)
		case strings.HasPrefix(line, "- **License:**"):
			current.License = fieldValue(line)
		case strings.HasPrefix(line, "- **Tier:**"):
			current.rawTier = fieldValue(line)
		case strings.HasPrefix(line, "- **What it is:**"):
			current.Description = fieldValue(line)
		case active == sectionKnownIssues && numberedPattern.MatchString(line):
			current.KnownIssues = append(current.KnownIssues, numberedPattern.ReplaceAllString(line, ""))
		case active == sectionAdvantages && strings.HasPrefix(line, "- "):
			current.Advantages = append(current.Advantages, strings.TrimPrefix(line, "- "))
		case active == sectionAPIMapping && strings.HasPrefix(line, "- `"):
			current.APIMapping = append(current.APIMapping, strings.TrimPrefix(line, "- "))
		}
	}
	flush()

	return items
}

func fieldValue(line string) string {
	if idx := strings.LastIndex(line, ":**"); idx >= 0 {
		return strings.TrimSpace(line[idx+len(":**"):])
	}
	return ""
}
