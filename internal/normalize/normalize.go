// Package normalize produces the canonical text form used for similarity
// comparison: collapsed whitespace, a restricted character set, and lower case.
package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Keep word characters plus the basic punctuation that carries meaning
	// in contract text. Everything else is stripped.
	disallowedRe = regexp.MustCompile(`[^\w\s.,;:!?-]`)
)

// Text returns the normalized form of raw document text. It is total: any
// input, including the empty string, yields a valid (possibly empty) result.
func Text(raw string) string {
	s := whitespaceRe.ReplaceAllString(raw, " ")
	s = disallowedRe.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.ToLower(s))
}
