package ports

import (
	"context"

	"github.com/parcelworks/nameguard/internal/domain/entities"
)

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entities.Location, error)
}
