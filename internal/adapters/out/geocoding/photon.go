package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"courier-tracker/internal/adapters/out/httpclient"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// Coordinates are [lng, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Photon queries the komoot Photon API. It has no country filter, only the
// suffix.
type Photon struct {
	http    *httpclient.Client
	country Country
}

func NewPhoton(client *httpclient.Client, country Country) (*Photon, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("http client")
	}
	return &Photon{http: client, country: country}, nil
}

func (p *Photon) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	var resp photonResponse
	err := p.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/api/",
		Query: url.Values{
			"q":     {p.country.qualify(address)},
			"limit": {"1"},
		},
	}, &resp)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		return kernel.GeoPoint{}, fmt.Errorf("%w: photon has no match", ports.ErrAddressNotFound)
	}
	c := resp.Features[0].Geometry.Coordinates
	return usablePoint(c[1], c[0])
}
