// Package queries contains read operations for retrieving the tracker's state.
// Queries return read models shaped for the device UI; they never change
// state.
package queries

import (
	"time"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
)

// PointResponse is a coordinate pair.
type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func newPointResponse(p kernel.GeoPoint) PointResponse {
	return PointResponse{Lat: p.Lat(), Lng: p.Lng()}
}

// ItemResponse is one order line.
type ItemResponse struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// OrderResponse is an order as listed in the feed and its detail.
type OrderResponse struct {
	ID               int64          `json:"id"`
	Status           string         `json:"status"`
	CourierID        *int64         `json:"courier_id,omitempty"`
	CustomerName     string         `json:"customer_name"`
	CustomerUsername string         `json:"customer_username,omitempty"`
	CustomerPhone    string         `json:"customer_phone,omitempty"`
	AddressName      string         `json:"address_name,omitempty"`
	Address          string         `json:"address"`
	AddressReference string         `json:"address_reference,omitempty"`
	Location         *PointResponse `json:"location,omitempty"`
	Total            float64        `json:"total"`
	PaymentMethod    string         `json:"payment_method"`
	OrderedAt        *time.Time     `json:"ordered_at,omitempty"`
	Items            []ItemResponse `json:"items"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	r := OrderResponse{
		ID:               int64(o.ID()),
		Status:           o.Status().Wire(),
		CustomerName:     o.Customer().Name,
		CustomerUsername: o.Customer().Username,
		CustomerPhone:    o.Customer().Phone,
		AddressName:      o.Address().Name,
		Address:          o.Address().Full,
		AddressReference: o.Address().Reference,
		Total:            o.Total(),
		PaymentMethod:    o.PaymentMethod(),
		Items:            make([]ItemResponse, 0, len(o.Items())),
	}
	if c := o.Courier(); c != nil {
		id := int64(*c)
		r.CourierID = &id
	}
	if p, ok := o.CustomerLocation(); ok {
		pr := newPointResponse(p)
		r.Location = &pr
	}
	if t := o.OrderedAt(); !t.IsZero() {
		r.OrderedAt = &t
	}
	for _, it := range o.Items() {
		r.Items = append(r.Items, ItemResponse{
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			LineTotal:   it.LineTotal(),
		})
	}
	return r
}

// PositionResponse is a courier fix.
type PositionResponse struct {
	PointResponse
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

func newPositionResponse(p courier.Position) PositionResponse {
	return PositionResponse{
		PointResponse: newPointResponse(p.Point()),
		Accuracy:      p.Accuracy(),
		CapturedAt:    p.CapturedAt(),
	}
}

// MarkerResponse is a map pin.
type MarkerResponse struct {
	Point PointResponse `json:"point"`
	Color string        `json:"color"`
	Popup string        `json:"popup"`
}

// RouteResponse is the line drawn between the markers.
type RouteResponse struct {
	Kind   string          `json:"kind"`
	Style  string          `json:"style"`
	Points []PointResponse `json:"points"`
}

// BoundsResponse is the viewport box.
type BoundsResponse struct {
	SouthWest PointResponse `json:"south_west"`
	NorthEast PointResponse `json:"north_east"`
}

// MapViewResponse is everything a renderer needs to draw one order's map.
type MapViewResponse struct {
	Handle     string           `json:"handle"`
	OrderID    int64            `json:"order_id"`
	Courier    PointResponse    `json:"courier"`
	Customer   PointResponse    `json:"customer"`
	DistanceKm float64          `json:"distance_km"`
	Center     PointResponse    `json:"center"`
	Bounds     BoundsResponse   `json:"bounds"`
	Markers    []MarkerResponse `json:"markers"`
	Route      RouteResponse    `json:"route"`
	StyleURL   string           `json:"style_url,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewMapViewResponse renders v. It is shared with the live view stream.
func NewMapViewResponse(v *mapview.View) MapViewResponse {
	markers := v.Markers()
	r := MapViewResponse{
		Handle:     v.Handle().String(),
		OrderID:    int64(v.OrderID()),
		Courier:    newPointResponse(v.CourierAt()),
		Customer:   newPointResponse(v.CustomerAt()),
		DistanceKm: v.DistanceKm(),
		Center:     newPointResponse(v.Center()),
		Bounds: BoundsResponse{
			SouthWest: newPointResponse(v.Bounds().SouthWest),
			NorthEast: newPointResponse(v.Bounds().NorthEast),
		},
		Markers:   make([]MarkerResponse, 0, len(markers)),
		StyleURL:  v.StyleURL(),
		UpdatedAt: v.UpdatedAt(),
	}
	for _, m := range markers {
		r.Markers = append(r.Markers, MarkerResponse{Point: newPointResponse(m.Point), Color: m.Color, Popup: m.Popup})
	}

	route := v.Route()
	r.Route = RouteResponse{Kind: route.Kind().String(), Style: string(route.Style())}
	for _, p := range route.Points() {
		r.Route.Points = append(r.Route.Points, newPointResponse(p))
	}
	return r
}
