package mocks

import (
	"context"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// PropertyWriter is a mock implementation of ports.PropertyWriter.
type PropertyWriter struct {
	Err error

	// Call tracking
	InitCallCount   int
	UpsertCallCount int
	Upserted        []entities.ExistingProperty
}

// Init returns the configured error.
func (m *PropertyWriter) Init(ctx context.Context) error {
	m.InitCallCount++
	return m.Err
}

// Upsert records the given properties.
func (m *PropertyWriter) Upsert(ctx context.Context, props []entities.ExistingProperty) error {
	m.UpsertCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Upserted = append(m.Upserted, props...)
	return nil
}

// Count returns the number of recorded properties.
func (m *PropertyWriter) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Upserted)), nil
}
