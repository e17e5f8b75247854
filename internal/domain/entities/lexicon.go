package entities

import "fmt"

// Category classifies a lexicon entry.
type Category string

// Lexicon categories. Each maps to one content check.
const (
	CategoryProfane  Category = "profane"
	CategorySlang    Category = "slang"
	CategoryCultural Category = "culturally_sensitive"
)

// Categories lists all lexicon categories in check order.
var Categories = []Category{CategoryProfane, CategoryCultural, CategorySlang}

// ParseCategory converts a raw string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryProfane, CategorySlang, CategoryCultural:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Severity bounds for lexicon entries.
const (
	MinSeverity = 1
	MaxSeverity = 3
)

// LexiconEntry is one curated disallowed or sensitive term.
// Entries are immutable once loaded.
type LexiconEntry struct {
	Term     string   `json:"term"`
	Category Category `json:"category"`
	Locale   string   `json:"locale"`
	Severity int      `json:"severity"`
	// Note carries an optional explanation surfaced in verdict reasons
	// (e.g. why a culturally sensitive term is flagged).
	Note string `json:"note,omitempty"`
}

// Validate checks that the entry is well-formed.
func (e LexiconEntry) Validate() error {
	if Normalize(e.Term) == "" {
		return fmt.Errorf("empty term")
	}
	if _, err := ParseCategory(string(e.Category)); err != nil {
		return err
	}
	if e.Severity < MinSeverity || e.Severity > MaxSeverity {
		return fmt.Errorf("severity %d out of range [%d,%d]", e.Severity, MinSeverity, MaxSeverity)
	}
	return nil
}
