package entities

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinates are within WGS84 bounds.
func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", l.Lat)
	}
	if l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", l.Lon)
	}
	return nil
}

// DistanceMeters returns the haversine great-circle distance to other.
func (l Location) DistanceMeters(other Location) float64 {
	lat1 := l.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - l.Lat) * math.Pi / 180
	dLon := (other.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// ExistingProperty is a snapshot of a geocoded property returned by a
// property index. The core only reads these; it never owns their lifecycle.
type ExistingProperty struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	// DistanceMeters from the query location, filled by the duplicate checker.
	DistanceMeters float64 `json:"distance_meters,omitempty"`
}

// Position returns the property's coordinates as a Location.
func (p ExistingProperty) Position() Location {
	return Location{Lat: p.Lat, Lon: p.Lon}
}
