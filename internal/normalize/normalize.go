// Package normalize standardizes free-form business text for matching.
// All scoring functions compare normalized strings only.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// markStripper decomposes to NFD, drops combining marks (covers both
// Latin diacritics and Arabic harakat, which are category Mn), and
// recomposes.
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the input, strips diacritical marks, replaces
// every character that is not a letter, digit, underscore or whitespace
// with a space, collapses repeated whitespace and trims. Arabic letters
// pass through untouched. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)

	if stripped, _, err := transform.String(markStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens normalizes s and splits it into whitespace-separated tokens of
// length greater than minLen.
func Tokens(s string, minLen int) []string {
	var out []string
	for _, tok := range strings.Fields(Normalize(s)) {
		if len([]rune(tok)) > minLen {
			out = append(out, tok)
		}
	}
	return out
}

// Domain strips protocol, www prefix and trailing slash from a URL and
// lowercases the rest.
func Domain(rawURL string) string {
	d := strings.TrimSpace(rawURL)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	d = strings.TrimSuffix(d, "/")
	return strings.ToLower(d)
}
