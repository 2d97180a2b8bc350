package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

var _ ports.Geocoder = (*Chain)(nil)

// Chain asks each geocoder in turn and returns the first usable result.
type Chain struct {
	geocoders []ports.Geocoder
	logger    *slog.Logger
}

func NewChain(logger *slog.Logger, geocoders ...ports.Geocoder) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{geocoders: geocoders, logger: logger.With("component", "geocoding")}
}

// Geocode returns ports.ErrAddressNotFound, joined with every provider's
// failure, when nobody resolves address.
func (c *Chain) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	failures := make([]error, 0, len(c.geocoders))
	for i, g := range c.geocoders {
		p, err := g.Geocode(ctx, address)
		if err == nil {
			return p, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return kernel.GeoPoint{}, ctxErr
		}
		c.logger.DebugContext(ctx, "geocoder failed", "position", i+1, "address", address, "error", err)
		failures = append(failures, err)
	}

	return kernel.GeoPoint{}, fmt.Errorf("%w: %q: %w", ports.ErrAddressNotFound, address, errors.Join(failures...))
}
