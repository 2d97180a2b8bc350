package mapview

import (
	"errors"
	"fmt"
	"math"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"
)

// ErrViewIsNotConstructed is returned when a View was not built by NewView.
var ErrViewIsNotConstructed = errors.New("View must be created via NewView")

const (
	CourierColor  = "#2563eb"
	CustomerColor = "#dc2626"
)

// Marker is a pin on the map with its popup text.
type Marker struct {
	Point kernel.GeoPoint
	Color string
	Popup string
}

// Bounds is the box the renderer fits the viewport to.
type Bounds struct {
	SouthWest kernel.GeoPoint
	NorthEast kernel.GeoPoint
}

// Customer is what the customer marker shows besides coordinates.
type Customer struct {
	Name    string
	Address string
}

// View is the map rendered for one in-progress order. Each open gets a fresh
// handle; a view replaced by a later open keeps its old handle and is no longer
// current.
type View struct {
	handle     kernel.UUID
	orderID    order.ID
	customer   Customer
	courierAt  kernel.GeoPoint
	customerAt kernel.GeoPoint
	distanceKm float64
	route      Route
	styleURL   string
	updatedAt  time.Time

	isConstructed bool
}

// NewView builds the view with a straight route until a driving route arrives.
func NewView(orderID order.ID, customer Customer, courierAt, customerAt kernel.GeoPoint, styleURL string, now time.Time) (*View, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", orderID))
	}

	v := &View{
		handle:        kernel.NewUUID(),
		orderID:       orderID,
		customer:      customer,
		customerAt:    customerAt,
		styleURL:      styleURL,
		isConstructed: true,
	}
	if err := errors.Join(customerAt.Validate(), v.Reposition(courierAt, now)); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate ensures the view was built by NewView.
func (v *View) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrViewIsNotConstructed
	}
	return nil
}

func (v *View) Handle() kernel.UUID         { return v.handle }
func (v *View) OrderID() order.ID           { return v.orderID }
func (v *View) CourierAt() kernel.GeoPoint  { return v.courierAt }
func (v *View) CustomerAt() kernel.GeoPoint { return v.customerAt }
func (v *View) DistanceKm() float64         { return v.distanceKm }
func (v *View) Route() Route                { return v.route }
func (v *View) StyleURL() string            { return v.styleURL }
func (v *View) UpdatedAt() time.Time        { return v.updatedAt }

// Reposition moves the courier marker, recomputes the distance and resets the
// route to a straight line until the next route result.
func (v *View) Reposition(courierAt kernel.GeoPoint, now time.Time) error {
	if err := courierAt.Validate(); err != nil {
		return err
	}
	d, err := courierAt.DistanceKm(v.customerAt)
	if err != nil {
		return err
	}
	v.courierAt = courierAt
	v.distanceKm = d
	v.route = NewStraightRoute(courierAt, v.customerAt)
	v.updatedAt = now
	return nil
}

// ApplyRoute replaces the route layer wholesale.
func (v *View) ApplyRoute(r Route, now time.Time) error {
	if len(r.points) < 2 {
		return errs.NewValueIsRequiredError("route")
	}
	v.route = r
	v.updatedAt = now
	return nil
}

// Center is the midpoint of the two markers.
func (v *View) Center() kernel.GeoPoint {
	c, _ := v.courierAt.Midpoint(v.customerAt)
	return c
}

// Bounds encloses both markers.
func (v *View) Bounds() Bounds {
	sw, _ := kernel.NewGeoPoint(
		math.Min(v.courierAt.Lat(), v.customerAt.Lat()),
		math.Min(v.courierAt.Lng(), v.customerAt.Lng()),
	)
	ne, _ := kernel.NewGeoPoint(
		math.Max(v.courierAt.Lat(), v.customerAt.Lat()),
		math.Max(v.courierAt.Lng(), v.customerAt.Lng()),
	)
	return Bounds{SouthWest: sw, NorthEast: ne}
}

// Markers returns the courier marker followed by the customer marker.
func (v *View) Markers() []Marker {
	name := v.customer.Name
	if name == "" {
		name = "Customer"
	}
	address := v.customer.Address
	if address == "" {
		address = "Address not specified"
	}

	return []Marker{
		{
			Point: v.courierAt,
			Color: CourierColor,
			Popup: fmt.Sprintf("Your location (GPS)\nDistance: %.2f km\nLat: %.6f\nLng: %.6f",
				v.distanceKm, v.courierAt.Lat(), v.courierAt.Lng()),
		},
		{
			Point: v.customerAt,
			Color: CustomerColor,
			Popup: fmt.Sprintf("%s\n%s\nDistance: %.2f km\nLat: %.6f\nLng: %.6f",
				name, address, v.distanceKm, v.customerAt.Lat(), v.customerAt.Lng()),
		},
	}
}

// Clone returns a copy that shares nothing mutable with v.
func (v *View) Clone() *View {
	if v == nil {
		return nil
	}
	c := *v
	c.route = Route{kind: v.route.kind, points: v.route.Points()}
	return &c
}
