// Package lexicons loads and indexes the curated wordlists backing the
// content checks.
package lexicons

import (
	"fmt"
	"sort"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// Store is an in-memory lexicon index. Immutable after construction and
// safe for concurrent reads.
type Store struct {
	entries []entities.LexiconEntry
	byTerm  map[string]entities.LexiconEntry
	locales []string
}

// NewStore validates and indexes the given entries. Entries sharing the
// same term, category and locale are deduplicated, keeping the highest
// severity.
func NewStore(entries []entities.LexiconEntry) (*Store, error) {
	type dedupeKey struct {
		term     string
		category entities.Category
		locale   string
	}

	deduped := make(map[dedupeKey]entities.LexiconEntry, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("lexicon entry %q: %w", entry.Term, err)
		}
		key := dedupeKey{term: entities.Normalize(entry.Term), category: entry.Category, locale: entry.Locale}
		if existing, ok := deduped[key]; !ok || entry.Severity > existing.Severity {
			deduped[key] = entry
		}
	}

	s := &Store{
		entries: make([]entities.LexiconEntry, 0, len(deduped)),
		byTerm:  make(map[string]entities.LexiconEntry, len(deduped)),
	}

	localeSet := make(map[string]struct{})
	for key, entry := range deduped {
		s.entries = append(s.entries, entry)
		if existing, ok := s.byTerm[key.term]; !ok || entry.Severity > existing.Severity {
			s.byTerm[key.term] = entry
		}
		if entry.Locale != "" {
			localeSet[entry.Locale] = struct{}{}
		}
	}

	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].Term != s.entries[j].Term {
			return s.entries[i].Term < s.entries[j].Term
		}
		return s.entries[i].Locale < s.entries[j].Locale
	})

	for locale := range localeSet {
		s.locales = append(s.locales, locale)
	}
	sort.Strings(s.locales)

	return s, nil
}

// LookupExact returns the entry for a normalized term, if present. When
// the term appears in several categories the highest-severity entry wins.
func (s *Store) LookupExact(normalizedTerm string) (entities.LexiconEntry, bool) {
	entry, ok := s.byTerm[normalizedTerm]
	return entry, ok
}

// TermsByCategory returns the entries of one category whose locale matches
// or is empty. Empty-locale entries apply to every locale.
func (s *Store) TermsByCategory(category entities.Category, locale string) []entities.LexiconEntry {
	var out []entities.LexiconEntry
	for _, entry := range s.entries {
		if entry.Category == category && (entry.Locale == "" || entry.Locale == locale) {
			out = append(out, entry)
		}
	}
	return out
}

// Locales returns the distinct locales present in the store, sorted.
func (s *Store) Locales() []string {
	return s.locales
}

// Len returns the total number of entries after deduplication.
func (s *Store) Len() int {
	return len(s.entries)
}
