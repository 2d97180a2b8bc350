// Package geocoding resolves free-text delivery addresses. Nominatim and Photon
// are queried in a fixed order by Chain, and Cached keeps the results.
package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"courier-tracker/internal/adapters/out/httpclient"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

var (
	_ ports.Geocoder = (*Nominatim)(nil)
	_ ports.Geocoder = (*Photon)(nil)
)

// Country narrows a lookup. An empty Name adds no suffix and an empty Code
// adds no filter.
type Country struct {
	Name string
	Code string
}

func (c Country) qualify(address string) string {
	if c.Name == "" {
		return address
	}
	return address + ", " + c.Name
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Nominatim queries the OpenStreetMap search endpoint.
type Nominatim struct {
	http    *httpclient.Client
	country Country
}

func NewNominatim(client *httpclient.Client, country Country) (*Nominatim, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("http client")
	}
	return &Nominatim{http: client, country: country}, nil
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	query := url.Values{
		"format": {"json"},
		"q":      {n.country.qualify(address)},
		"limit":  {"1"},
	}
	if n.country.Code != "" {
		query.Set("countrycodes", strings.ToLower(n.country.Code))
	}

	var places []nominatimPlace
	if err := n.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/search", Query: query}, &places); err != nil {
		return kernel.GeoPoint{}, err
	}
	if len(places) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("%w: nominatim has no match", ports.ErrAddressNotFound)
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: nominatim returned %q,%q", ports.ErrAddressNotFound, places[0].Lat, places[0].Lon)
	}
	return usablePoint(lat, lng)
}

// usablePoint rejects zero components the same way stored coordinates are.
func usablePoint(lat, lng float64) (kernel.GeoPoint, error) {
	if lat == 0 || lng == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("%w: zero coordinate", ports.ErrAddressNotFound)
	}
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ports.ErrAddressNotFound, err)
	}
	return p, nil
}
