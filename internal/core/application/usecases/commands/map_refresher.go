package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/services"
	"courier-tracker/internal/core/ports"
)

// MapRefresher requests routes for open views and applies them. A route that
// arrives after its view was closed or replaced is dropped.
type MapRefresher struct {
	router   ports.Router
	views    ports.MapViewRegistry
	selector services.RouteSelector
	logger   *slog.Logger
}

func NewMapRefresher(router ports.Router, views ports.MapViewRegistry, logger *slog.Logger) MapRefresher {
	return MapRefresher{
		router:   router,
		views:    views,
		selector: services.NewRouteSelector(),
		logger:   logger.With("component", "MapRefresher"),
	}
}

// Route replaces the route layer of the view with handle.
func (r MapRefresher) Route(ctx context.Context, handle kernel.UUID, from, to kernel.GeoPoint) error {
	road, roadErr := r.router.Route(ctx, from, to)
	if roadErr != nil {
		r.logger.Debug("routing failed, drawing straight line", "error", roadErr)
	}
	route := r.selector.Select(from, to, road, roadErr)

	err := r.views.Update(handle, func(v *mapview.View) error {
		return v.ApplyRoute(route, time.Now())
	})
	if errors.Is(err, ports.ErrViewNotCurrent) {
		r.logger.Debug("discarding route for a view that is gone", "handle", handle.String())
		return nil
	}
	return err
}

// RefreshAll moves the courier marker of every open view to courierAt and
// reroutes it, in the order the views were opened. Views whose order is no
// longer in progress are skipped.
func (r MapRefresher) RefreshAll(ctx context.Context, courierAt kernel.GeoPoint, inProgress func(order.ID) bool) {
	for _, v := range r.views.All() {
		if ctx.Err() != nil {
			return
		}
		if !inProgress(v.OrderID()) {
			continue
		}

		err := r.views.Update(v.Handle(), func(cur *mapview.View) error {
			return cur.Reposition(courierAt, time.Now())
		})
		if err != nil {
			r.logger.Debug("skipping view refresh", "order_id", v.OrderID(), "error", err)
			continue
		}

		if err = r.Route(ctx, v.Handle(), courierAt, v.CustomerAt()); err != nil {
			r.logger.Debug("failed to apply route", "order_id", v.OrderID(), "error", err)
		}
	}
}
