package generate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxResearchExcerpts  = 3
	maxExcerptLength     = 1500
	minRelevantParagraph = 100
)

// SearchResearch scans the research directory for paragraphs mentioning the
// item by name or slug and returns up to three bounded excerpts. A missing
// directory is not an error; research is optional input.
func SearchResearch(dir, name, slug string) string {
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	if _, err := os.Stat(dir); err != nil {
		return ""
	}

	terms := []string{strings.ToLower(name), strings.ToLower(slug)}
	if strings.Contains(name, ".") {
		terms = append(terms, strings.ToLower(strings.ReplaceAll(name, ".", "")))
	}

	var excerpts []string
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := string(data)
		if !containsAny(strings.ToLower(content), terms) {
			return nil
		}
		for _, paragraph := range strings.Split(content, "\n\n") {
			if len(paragraph) < minRelevantParagraph {
				continue
			}
			if !containsAny(strings.ToLower(paragraph), terms) {
				continue
			}
			if len(paragraph) > maxExcerptLength {
				paragraph = paragraph[:maxExcerptLength]
			}
			excerpts = append(excerpts, "["+entry.Name()+"]: "+paragraph)
			if len(excerpts) >= maxResearchExcerpts {
				return fs.SkipAll
			}
		}
		return nil
	})

	return strings.Join(excerpts, "\n\n---\n\n")
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
