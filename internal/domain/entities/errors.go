package entities

import "fmt"

// LexiconLoadError indicates the lexicon backing data is missing or
// unreadable. Startup-fatal: the system cannot screen without lexicons.
type LexiconLoadError struct {
	Source string
	Err    error
}

func (e *LexiconLoadError) Error() string {
	return fmt.Sprintf("loading lexicon %s: %v", e.Source, e.Err)
}

func (e *LexiconLoadError) Unwrap() error { return e.Err }

// GeoLookupError indicates the property index was unreachable, timed out,
// or returned malformed data. Request-scoped: surfaced to the caller, never
// silently treated as "no duplicates".
type GeoLookupError struct {
	Provider string
	Err      error
}

func (e *GeoLookupError) Error() string {
	return fmt.Sprintf("geo lookup via %s: %v", e.Provider, e.Err)
}

func (e *GeoLookupError) Unwrap() error { return e.Err }

// InvalidInputError rejects a validation request before any check runs.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
