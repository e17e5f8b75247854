package mocks

import "context"

// Suggester is a mock implementation of ports.Suggester.
type Suggester struct {
	Suggestions []string
	Err         error

	// Call tracking
	SuggestCallCount int
	LastName         string
	LastIssues       []string
}

// Suggest returns the configured suggestions or error.
func (m *Suggester) Suggest(ctx context.Context, name string, issues []string) ([]string, error) {
	m.SuggestCallCount++
	m.LastName = name
	m.LastIssues = issues
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Suggestions, nil
}
