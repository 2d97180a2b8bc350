package mapview_test

import (
	"testing"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestNewView(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	courier := point(t, 9.0, -82.4)
	customer := point(t, 9.01, -82.41)

	v, err := mapview.NewView(3, mapview.Customer{Name: "Ana", Address: "Calle 50"}, courier, customer, "https://tiles/style.json", now)

	require.NoError(t, err)
	require.NoError(t, v.Validate())
	assert.NoError(t, v.Handle().Validate())
	assert.InDelta(t, 1.5628727916620928, v.DistanceKm(), 1e-9)
	assert.Equal(t, mapview.RouteStraight, v.Route().Kind())
	assert.Equal(t, []kernel.GeoPoint{courier, customer}, v.Route().Points())
	assert.Equal(t, now, v.UpdatedAt())

	center := v.Center()
	assert.InDelta(t, 9.005, center.Lat(), 1e-9)
	assert.InDelta(t, -82.405, center.Lng(), 1e-9)

	b := v.Bounds()
	assert.InDelta(t, 9.0, b.SouthWest.Lat(), 1e-9)
	assert.InDelta(t, -82.41, b.SouthWest.Lng(), 1e-9)
	assert.InDelta(t, 9.01, b.NorthEast.Lat(), 1e-9)
	assert.InDelta(t, -82.4, b.NorthEast.Lng(), 1e-9)
}

func TestNewView_Invalid(t *testing.T) {
	_, err := mapview.NewView(0, mapview.Customer{}, point(t, 1, 1), point(t, 2, 2), "", time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = mapview.NewView(1, mapview.Customer{}, kernel.GeoPoint{}, point(t, 2, 2), "", time.Now())
	assert.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
}

func TestNewView_HandlesAreUnique(t *testing.T) {
	a, err := mapview.NewView(1, mapview.Customer{}, point(t, 1, 1), point(t, 2, 2), "", time.Now())
	require.NoError(t, err)
	b, err := mapview.NewView(1, mapview.Customer{}, point(t, 1, 1), point(t, 2, 2), "", time.Now())
	require.NoError(t, err)

	assert.False(t, a.Handle().IsEqual(b.Handle()))
}

func TestView_Markers(t *testing.T) {
	v, err := mapview.NewView(1, mapview.Customer{}, point(t, 9.0, -82.4), point(t, 9.01, -82.41), "", time.Now())
	require.NoError(t, err)

	markers := v.Markers()

	require.Len(t, markers, 2)
	assert.Equal(t, mapview.CourierColor, markers[0].Color)
	assert.Equal(t, "Your location (GPS)\nDistance: 1.56 km\nLat: 9.000000\nLng: -82.400000", markers[0].Popup)
	assert.Equal(t, mapview.CustomerColor, markers[1].Color)
	assert.Equal(t, "Customer\nAddress not specified\nDistance: 1.56 km\nLat: 9.010000\nLng: -82.410000", markers[1].Popup)
}

func TestView_RepositionAndApplyRoute(t *testing.T) {
	customer := point(t, 9.01, -82.41)
	v, err := mapview.NewView(1, mapview.Customer{}, point(t, 9.0, -82.4), customer, "", time.Now())
	require.NoError(t, err)

	road, err := mapview.NewDrivingRoute([]kernel.GeoPoint{point(t, 9.0, -82.4), point(t, 9.005, -82.402), customer})
	require.NoError(t, err)
	require.NoError(t, v.ApplyRoute(road, time.Now()))
	assert.Equal(t, mapview.LineSolid, v.Route().Style())
	assert.Len(t, v.Route().Points(), 3)

	moved := point(t, 9.01, -82.41)
	require.NoError(t, v.Reposition(moved, time.Now()))
	assert.InDelta(t, 0, v.DistanceKm(), 1e-9)
	assert.Equal(t, mapview.LineDashed, v.Route().Style())
	assert.Equal(t, []kernel.GeoPoint{moved, customer}, v.Route().Points())

	assert.ErrorIs(t, v.ApplyRoute(mapview.Route{}, time.Now()), errs.ErrValueIsRequired)
}

func TestNewDrivingRoute_TooShort(t *testing.T) {
	_, err := mapview.NewDrivingRoute([]kernel.GeoPoint{point(t, 1, 1)})

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewStraightRoute(t *testing.T) {
	from, to := point(t, 1, 2), point(t, 3, 4)

	r := mapview.NewStraightRoute(from, to)

	assert.Equal(t, mapview.RouteStraight, r.Kind())
	assert.Equal(t, mapview.LineDashed, r.Style())
	assert.Equal(t, []kernel.GeoPoint{from, to}, r.Points())
}
