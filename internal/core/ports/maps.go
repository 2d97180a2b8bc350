package ports

import (
	"context"
	"errors"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
)

var (
	// ErrNoRoute is returned when the routing service has no route between two points.
	ErrNoRoute = errors.New("no route found")

	// ErrAddressNotFound is returned when a geocoder has no usable result.
	ErrAddressNotFound = errors.New("address not found")
)

// Router computes a driving path between two points.
type Router interface {
	Route(ctx context.Context, from, to kernel.GeoPoint) ([]kernel.GeoPoint, error)
}

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}

// GeocodeCache remembers geocoding results by address.
type GeocodeCache interface {
	// Get reports found=false on a miss.
	Get(ctx context.Context, address string) (p kernel.GeoPoint, found bool, err error)
	Set(ctx context.Context, address string, p kernel.GeoPoint, ttl time.Duration) error
}
