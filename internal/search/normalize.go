package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize produces the cache key for a raw query: Unicode case folding
// plus whitespace collapsing, so "The  MATRIX " and "the matrix" share one
// cache entry. Casers are stateful, so one is created per call.
func Normalize(raw string) string {
	folded := cases.Fold().String(raw)
	return strings.Join(strings.Fields(folded), " ")
}

// TitleCase renders a normalized key for display.
func TitleCase(key string) string {
	return cases.Title(language.Und).String(key)
}
