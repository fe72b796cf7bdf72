package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	nonAlphanumPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the stable identifier for a display name: lowercase,
// diacritics stripped, parenthetical text removed, non-alphanumeric runs
// collapsed to single dashes, dashes trimmed.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}
	s = parentheticalPattern.ReplaceAllString(s, " ")
	s = nonAlphanumPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
