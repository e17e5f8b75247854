// Package ports defines the interfaces the domain uses to talk to
// collaborators.
package ports

import "github.com/parcelworks/nameguard/internal/domain/entities"

// LexiconStore provides read-only access to the loaded wordlists.
// Implementations are immutable after load and safe for concurrent reads.
type LexiconStore interface {
	// LookupExact returns the entry for a normalized term, if present.
	LookupExact(normalizedTerm string) (entities.LexiconEntry, bool)

	// TermsByCategory returns the entries of one category for a locale.
	// Entries with an empty locale apply to every locale.
	TermsByCategory(category entities.Category, locale string) []entities.LexiconEntry

	// Locales returns the locales present in the store.
	Locales() []string

	// Len returns the total number of entries.
	Len() int
}
