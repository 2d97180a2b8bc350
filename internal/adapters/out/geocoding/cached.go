package geocoding

import (
	"context"
	"log/slog"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/metrics"
)

var _ ports.Geocoder = (*Cached)(nil)

// Cached serves repeated addresses from a GeocodeCache. Cache failures are
// logged and never fail a lookup. Only successful results are stored.
type Cached struct {
	next   ports.Geocoder
	cache  ports.GeocodeCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next ports.Geocoder, cache ports.GeocodeCache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{next: next, cache: cache, ttl: ttl, logger: logger.With("component", "geocode_cache")}
}

func (c *Cached) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	p, found, err := c.cache.Get(ctx, address)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "geocode cache read failed", "error", err)
	case found:
		metrics.GeocodeCacheHit()
		return p, nil
	default:
		metrics.GeocodeCacheMiss()
	}

	p, err = c.next.Geocode(ctx, address)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	if err = c.cache.Set(ctx, address, p, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "geocode cache write failed", "error", err)
	}
	return p, nil
}
