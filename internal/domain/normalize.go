package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DegradeText produces the degraded form of text used for collation and
// prefix search:
//   - strips combining marks (diacritics) after canonical decomposition
//   - applies Unicode case folding
//   - trims and compresses whitespace runs into a single space
//
// It mirrors the store-side txt_degr function closely enough to serve as the
// builtin normalizer; the store remains the source of truth for the corpus.
func DegradeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = strings.ToLower(text)
	}

	// Compress whitespace runs into one space.
	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// LeadingChar returns the first rune of s as a string, or "" for empty s.
func LeadingChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// EscapeLike escapes the LIKE metacharacters \, % and _ in s.
func EscapeLike(s string) string {
	if !strings.ContainsAny(s, `\%_`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\', '%', '_':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
