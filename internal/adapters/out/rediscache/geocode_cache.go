// Package rediscache keeps geocoding results in Redis so that reopening a map
// view never queries the geocoders again for the same address.
package rediscache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "geocode:"

var _ ports.GeocodeCache = (*GeocodeCache)(nil)

// GeocodeCache stores one hash {lat, lng} per normalized address.
type GeocodeCache struct {
	rdb *redis.Client
}

func NewGeocodeCache(rdb *redis.Client) (*GeocodeCache, error) {
	if rdb == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	return &GeocodeCache{rdb: rdb}, nil
}

func (c *GeocodeCache) Get(ctx context.Context, address string) (kernel.GeoPoint, bool, error) {
	fields, err := c.rdb.HGetAll(ctx, Key(address)).Result()
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("read geocode cache: %w", err)
	}
	if len(fields) == 0 {
		return kernel.GeoPoint{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(fields["lat"], 64)
	lng, lngErr := strconv.ParseFloat(fields["lng"], 64)
	if latErr != nil || lngErr != nil {
		return kernel.GeoPoint{}, false, errs.NewValueIsInvalidErrorWithCause("cached geocode", fmt.Errorf("%v", fields))
	}
	p, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}
	return p, true, nil
}

// Set stores p under address. A non-positive ttl keeps the entry forever.
func (c *GeocodeCache) Set(ctx context.Context, address string, p kernel.GeoPoint, ttl time.Duration) error {
	if err := p.Validate(); err != nil {
		return err
	}

	key := Key(address)
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"lat", strconv.FormatFloat(p.Lat(), 'f', -1, 64),
		"lng", strconv.FormatFloat(p.Lng(), 'f', -1, 64),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write geocode cache: %w", err)
	}
	return nil
}

// Key normalizes address: case and runs of whitespace do not matter.
func Key(address string) string {
	return keyPrefix + strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
