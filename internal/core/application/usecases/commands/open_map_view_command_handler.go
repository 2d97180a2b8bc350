package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

var (
	// ErrCustomerLocationUnresolved is returned when an order has no stored
	// coordinates and its address could not be geocoded.
	ErrCustomerLocationUnresolved = errors.New("could not resolve the customer location")

	// ErrCourierPositionUnavailable is returned when no courier fix could be obtained.
	ErrCourierPositionUnavailable = errors.New("courier position is unavailable")
)

// OpenMapViewCommandHandler builds the map of an in-progress order.
//
// Customer coordinates come from the order when stored, otherwise from the
// geocoder. Courier coordinates come from the latest fix, otherwise from one
// fresh acquisition. The view opens with a straight line and the driving
// route replaces it when the routing service answers.
type OpenMapViewCommandHandler struct {
	sessions SessionKeeper
	feeds    ports.FeedStore
	trackers ports.TrackerStore
	source   ports.PositionSource
	geocoder ports.Geocoder
	views    ports.MapViewRegistry
	maps     MapRefresher
	styleURL string
}

func NewOpenMapViewCommandHandler(
	sessions SessionKeeper,
	feeds ports.FeedStore,
	trackers ports.TrackerStore,
	source ports.PositionSource,
	geocoder ports.Geocoder,
	views ports.MapViewRegistry,
	maps MapRefresher,
	styleURL string,
) OpenMapViewCommandHandler {
	return OpenMapViewCommandHandler{
		sessions: sessions,
		feeds:    feeds,
		trackers: trackers,
		source:   source,
		geocoder: geocoder,
		views:    views,
		maps:     maps,
		styleURL: styleURL,
	}
}

func (h OpenMapViewCommandHandler) Handle(ctx context.Context, command OpenMapViewCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if _, _, err := h.sessions.Courier(ctx); err != nil {
		return err
	}

	current, ok := h.feeds.Get()
	if !ok {
		return errs.NewObjectNotFoundError("in-progress order", command.OrderID())
	}
	o, err := current.FindInProgress(command.OrderID())
	if err != nil {
		return err
	}

	customerAt, err := h.customerLocation(ctx, o)
	if err != nil {
		return err
	}

	courierAt, err := h.courierLocation(ctx)
	if err != nil {
		return err
	}

	v, err := mapview.NewView(
		o.ID(),
		mapview.Customer{Name: o.Customer().Name, Address: o.Address().Full},
		courierAt,
		customerAt,
		h.styleURL,
		time.Now(),
	)
	if err != nil {
		return err
	}

	// The order may have been delivered while the locations were resolved.
	if err = h.views.OpenIf(v, func() error { return h.stillInProgress(o.ID()) }); err != nil {
		return err
	}

	return h.maps.Route(ctx, v.Handle(), courierAt, customerAt)
}

func (h OpenMapViewCommandHandler) stillInProgress(id order.ID) error {
	current, ok := h.feeds.Get()
	if !ok {
		return errs.NewObjectNotFoundError("in-progress order", id)
	}
	_, err := current.FindInProgress(id)
	return err
}

func (h OpenMapViewCommandHandler) customerLocation(ctx context.Context, o *order.Order) (kernel.GeoPoint, error) {
	if p, ok := o.CustomerLocation(); ok {
		return p, nil
	}

	address := strings.TrimSpace(o.Address().Full)
	if address == "" {
		return kernel.GeoPoint{}, fmt.Errorf("%w for order #%d: %w",
			ErrCustomerLocationUnresolved, o.ID(), errs.NewValueIsRequiredError("address"))
	}

	p, err := h.geocoder.Geocode(ctx, address)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w for order #%d: %w", ErrCustomerLocationUnresolved, o.ID(), err)
	}
	return p, nil
}

func (h OpenMapViewCommandHandler) courierLocation(ctx context.Context) (kernel.GeoPoint, error) {
	if p, ok := h.trackers.Get().Latest(); ok {
		return p.Point(), nil
	}

	p, err := h.source.Acquire(ctx)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("%w: %w", ErrCourierPositionUnavailable, err)
	}

	if err = h.trackers.Update(func(t *courier.Tracker) error {
		return t.Record(p)
	}); err != nil {
		return kernel.GeoPoint{}, err
	}
	return p.Point(), nil
}
