// Package services contains the screening, duplicate-checking and
// reporting logic.
package services

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns a normalized edit-distance similarity in [0,1]:
// 1 - distance(a,b)/max(len(a),len(b)), computed over runes.
// Symmetric and reflexive; Similarity("", "") is 1 and Similarity("", x)
// is 0 for non-empty x.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0.0
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(maxLen)
}

// BestSimilarity compares the whole strings, their space-stripped forms,
// and every word pair, returning the maximum. Used for lexicon fuzzy
// matching, where any single word close to a disallowed term is a hit.
func BestSimilarity(a, b string) float64 {
	score := NameSimilarity(a, b)

	for _, wa := range strings.Fields(a) {
		for _, wb := range strings.Fields(b) {
			if s := Similarity(wa, wb); s > score {
				score = s
			}
		}
	}

	return score
}

// NameSimilarity compares the whole strings and their space-stripped
// forms, returning the maximum. Used for duplicate-name matching, where
// two property names sharing one word are not the same name, so the
// per-word comparison of BestSimilarity is deliberately excluded.
func NameSimilarity(a, b string) float64 {
	score := Similarity(a, b)

	if strings.ContainsRune(a, ' ') || strings.ContainsRune(b, ' ') {
		ca := strings.ReplaceAll(a, " ", "")
		cb := strings.ReplaceAll(b, " ", "")
		if s := Similarity(ca, cb); s > score {
			score = s
		}
	}

	return score
}
