package mocks

import (
	"context"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// Geocoder is a mock implementation of ports.Geocoder.
type Geocoder struct {
	Location entities.Location
	Err      error

	// Call tracking
	GeocodeCallCount int
	LastAddress      string
}

// Geocode returns the configured location or error.
func (m *Geocoder) Geocode(ctx context.Context, address string) (entities.Location, error) {
	m.GeocodeCallCount++
	m.LastAddress = address
	if m.Err != nil {
		return entities.Location{}, m.Err
	}
	return m.Location, nil
}
