package services

import (
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
)

// RouteSelector decides which route a map view draws.
//
// Business rules:
//   - A road path from the routing service is used when it was obtained without
//     error and has at least two valid points
//   - Anything else falls back to the straight line from courier to customer
//   - The fallback is never reported as an error
//
// Example usage:
//
//	selector := services.NewRouteSelector()
//	path, err := router.Route(ctx, courierAt, customerAt)
//	route := selector.Select(courierAt, customerAt, path, err)
type RouteSelector struct{}

// NewRouteSelector creates a new RouteSelector instance.
func NewRouteSelector() RouteSelector {
	return RouteSelector{}
}

// Select returns the route to draw between from and to.
//
// Parameters:
//   - from: courier position
//   - to: customer position
//   - road: path returned by the routing service, may be empty
//   - roadErr: error returned by the routing service, may be nil
//
// Returns:
//   - mapview.Route: a driving route or the straight [from, to] line
func (RouteSelector) Select(from, to kernel.GeoPoint, road []kernel.GeoPoint, roadErr error) mapview.Route {
	if roadErr == nil {
		if r, err := mapview.NewDrivingRoute(road); err == nil {
			return r
		}
	}
	return mapview.NewStraightRoute(from, to)
}
