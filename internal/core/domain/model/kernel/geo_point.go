package kernel

import (
	"errors"
	"fmt"
	"math"

	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine distance.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is an immutable WGS84 latitude/longitude pair. Both components are
// finite and inside their ranges; the zero value is invalid.
//
// Example:
//
//	customer, err := kernel.NewGeoPoint(9.0, -82.4)
//	if err != nil {
//	    // coordinates were NaN, infinite or out of range
//	}
//	fmt.Println(customer) // GeoPoint(9.000000,-82.400000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates and builds a GeoPoint.
//
// Returns an error if either component is NaN, infinite or outside
// [MinLatitude..MaxLatitude] / [MinLongitude..MaxLongitude].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate reports whether the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer with six decimals, the precision shown in map popups.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two constructed points component-wise.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKm returns the great-circle distance to other in kilometres using the
// Haversine formula with EarthRadiusKm.
//
// Example:
//
//	courier, _ := kernel.NewGeoPoint(9.01, -82.41)
//	customer, _ := kernel.NewGeoPoint(9.0, -82.4)
//	km, _ := courier.DistanceKm(customer) // ~1.56
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.lat - p.lat)
	dLng := toRadians(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.lat))*math.Cos(toRadians(other.lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

// Midpoint returns the arithmetic mean of both points. It is the map center,
// not the geodesic midpoint.
func (p GeoPoint) Midpoint(other GeoPoint) (GeoPoint, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return GeoPoint{}, err
	}

	return NewGeoPoint((p.lat+other.lat)/2, (p.lng+other.lng)/2)
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("latitude", fmt.Errorf("%v is not a finite number", lat))
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsInvalidErrorWithCause("longitude", fmt.Errorf("%v is not a finite number", lng))
	}
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	p.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
