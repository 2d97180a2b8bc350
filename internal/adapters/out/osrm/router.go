// Package osrm implements ports.Router on the OSRM route service.
package osrm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"courier-tracker/internal/adapters/out/httpclient"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

var _ ports.Router = (*Router)(nil)

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			// Coordinates are [lng, lat] pairs.
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Router asks OSRM for the driving path between two points.
type Router struct {
	http *httpclient.Client
}

func NewRouter(client *httpclient.Client) (*Router, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("http client")
	}
	return &Router{http: client}, nil
}

// Route returns the full-overview driving geometry from one point to the
// other. It returns ports.ErrNoRoute when OSRM has no route.
func (r *Router) Route(ctx context.Context, from, to kernel.GeoPoint) ([]kernel.GeoPoint, error) {
	var resp routeResponse
	err := r.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/route/v1/driving/" + coordinate(from) + ";" + coordinate(to),
		Query: url.Values{
			"geometries": {"geojson"},
			"overview":   {"full"},
		},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("%w: osrm code %q", ports.ErrNoRoute, resp.Code)
	}

	coords := resp.Routes[0].Geometry.Coordinates
	path := make([]kernel.GeoPoint, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, errs.NewValueIsInvalidErrorWithCause("route geometry", fmt.Errorf("coordinate %d has %d components", i, len(c)))
		}
		p, err := kernel.NewGeoPoint(c[1], c[0])
		if err != nil {
			return nil, fmt.Errorf("route geometry coordinate %d: %w", i, err)
		}
		path = append(path, p)
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: geometry has %d points", ports.ErrNoRoute, len(path))
	}
	return path, nil
}

func coordinate(p kernel.GeoPoint) string {
	return strconv.FormatFloat(p.Lng(), 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'f', -1, 64)
}
