package mapview

import (
	"fmt"
	"slices"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/pkg/errs"
)

// RouteKind tells how the path was obtained.
type RouteKind int

const (
	RouteStraight RouteKind = iota
	RouteDriving
)

func (k RouteKind) String() string {
	if k == RouteDriving {
		return "driving"
	}
	return "straight"
}

// LineStyle is the stroke the renderer uses for a route.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// Route is the path drawn between the courier and the customer.
type Route struct {
	kind   RouteKind
	points []kernel.GeoPoint
}

// NewDrivingRoute wraps a road path from the routing service. It needs at
// least two points.
func NewDrivingRoute(points []kernel.GeoPoint) (Route, error) {
	if len(points) < 2 {
		return Route{}, errs.NewValueIsInvalidErrorWithCause("route", fmt.Errorf("%d points, need at least 2", len(points)))
	}
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return Route{}, err
		}
	}
	return Route{kind: RouteDriving, points: slices.Clone(points)}, nil
}

// NewStraightRoute is the fallback path: exactly [from, to].
func NewStraightRoute(from, to kernel.GeoPoint) Route {
	return Route{kind: RouteStraight, points: []kernel.GeoPoint{from, to}}
}

func (r Route) Kind() RouteKind { return r.kind }

// Points returns a copy of the path.
func (r Route) Points() []kernel.GeoPoint { return slices.Clone(r.points) }

// Style is solid for driving routes and dashed for the straight fallback.
func (r Route) Style() LineStyle {
	if r.kind == RouteDriving {
		return LineSolid
	}
	return LineDashed
}
