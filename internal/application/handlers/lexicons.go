package handlers

import (
	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// LexiconsHandler reports on the loaded wordlists.
type LexiconsHandler struct {
	store ports.LexiconStore
}

// NewLexiconsHandler creates a new lexicons handler.
func NewLexiconsHandler(store ports.LexiconStore) *LexiconsHandler {
	return &LexiconsHandler{
		store: store,
	}
}

// LexiconSummary describes the loaded entries of one category and locale.
type LexiconSummary struct {
	Category entities.Category
	Locale   string
	Count    int
}

// Summarize returns per-category counts for every loaded locale, plus the
// global (empty locale) entries, in category order.
func (h *LexiconsHandler) Summarize() []LexiconSummary {
	var summaries []LexiconSummary

	locales := append([]string{""}, h.store.Locales()...)
	for _, cat := range entities.Categories {
		for _, locale := range locales {
			entries := h.store.TermsByCategory(cat, locale)
			count := 0
			for _, e := range entries {
				if e.Locale == locale {
					count++
				}
			}
			if count > 0 {
				summaries = append(summaries, LexiconSummary{Category: cat, Locale: locale, Count: count})
			}
		}
	}

	return summaries
}

// Total returns the number of entries across all lexicons.
func (h *LexiconsHandler) Total() int {
	return h.store.Len()
}
