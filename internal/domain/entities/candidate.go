// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes characters, removes combining marks, and recomposes
// (e.g. "Château" -> "Chateau").
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CandidateName is a property name under validation. Normalized is always
// derived from Raw and is the form every check operates on.
type CandidateName struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
}

// NewCandidateName builds a CandidateName with its normalized form.
func NewCandidateName(raw string) CandidateName {
	return CandidateName{
		Raw:        raw,
		Normalized: Normalize(raw),
	}
}

// Normalize lowercases, strips accents, removes punctuation, and collapses
// whitespace. Hyphens, slashes and underscores act as word separators.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s, _, _ = transform.String(stripAccents, s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '_':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Words returns the whitespace-separated tokens of the normalized name.
func (c CandidateName) Words() []string {
	return strings.Fields(c.Normalized)
}

// IsEmpty reports whether the normalized form contains no words.
func (c CandidateName) IsEmpty() bool {
	return c.Normalized == ""
}
