// Package slug turns display names into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s, folds accented letters to their base form, replaces
// every run of characters outside [a-z0-9] with a single hyphen and trims
// hyphens from both ends. Make(Make(s)) == Make(s).
func Make(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = nonAlnum.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// Valid reports whether s is already in the form Make produces.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
