package ports

import (
	"context"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// PropertyIndex answers radius queries against an index of existing
// geocoded properties. Failures are reported as *entities.GeoLookupError.
type PropertyIndex interface {
	// FindPropertiesNear returns the properties within radiusMeters of the
	// given coordinates. An empty result is a valid answer.
	FindPropertiesNear(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error)
}

// PropertyWriter ingests properties into a locally owned index.
type PropertyWriter interface {
	// Init prepares the backing schema or collection.
	Init(ctx context.Context) error

	// Upsert stores the given properties, generating IDs where missing.
	Upsert(ctx context.Context, props []entities.ExistingProperty) error

	// Count returns the number of indexed properties.
	Count(ctx context.Context) (int64, error)
}
