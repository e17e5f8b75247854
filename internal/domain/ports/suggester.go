package ports

import "context"

// Suggester proposes alternative property names when a candidate is
// rejected. Best effort: callers treat failures as "no suggestions".
type Suggester interface {
	// Suggest returns alternative names for name, given the reasons it was
	// flagged.
	Suggest(ctx context.Context, name string, issues []string) ([]string, error)
}
