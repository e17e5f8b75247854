package mocks

import "github.com/parcelworks/nameguard/internal/domain/entities"

// LexiconStore is a mock implementation of ports.LexiconStore backed by a
// plain entry slice.
type LexiconStore struct {
	Entries []entities.LexiconEntry
}

// LookupExact returns the first entry whose normalized term matches.
func (m *LexiconStore) LookupExact(normalizedTerm string) (entities.LexiconEntry, bool) {
	for _, e := range m.Entries {
		if entities.Normalize(e.Term) == normalizedTerm {
			return e, true
		}
	}
	return entities.LexiconEntry{}, false
}

// TermsByCategory returns entries of the category whose locale matches or
// is empty.
func (m *LexiconStore) TermsByCategory(category entities.Category, locale string) []entities.LexiconEntry {
	var out []entities.LexiconEntry
	for _, e := range m.Entries {
		if e.Category == category && (e.Locale == "" || e.Locale == locale) {
			out = append(out, e)
		}
	}
	return out
}

// Locales returns the distinct locales of the configured entries.
func (m *LexiconStore) Locales() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range m.Entries {
		if _, ok := seen[e.Locale]; !ok && e.Locale != "" {
			seen[e.Locale] = struct{}{}
			out = append(out, e.Locale)
		}
	}
	return out
}

// Len returns the number of configured entries.
func (m *LexiconStore) Len() int {
	return len(m.Entries)
}
