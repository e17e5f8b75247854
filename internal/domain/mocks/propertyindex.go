// Package mocks provides hand-written test doubles for the domain ports.
package mocks

import (
	"context"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// PropertyIndex is a mock implementation of ports.PropertyIndex.
type PropertyIndex struct {
	Properties []entities.ExistingProperty
	Err        error

	// Call tracking
	FindCallCount int
	LastLat       float64
	LastLon       float64
	LastRadius    float64
}

// FindPropertiesNear returns the configured properties or error.
func (m *PropertyIndex) FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	m.FindCallCount++
	m.LastLat = lat
	m.LastLon = lon
	m.LastRadius = radiusMeters
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, &entities.GeoLookupError{Provider: "mock", Err: err}
	}
	return m.Properties, nil
}
