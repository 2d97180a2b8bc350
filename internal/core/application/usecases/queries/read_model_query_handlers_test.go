package queries_test

import (
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/memory"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const me = order.CourierID(7)

var loadedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func restore(t *testing.T, id order.ID, status order.Status, courierID *order.CourierID, details order.Details) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, status, courierID, details)
	require.NoError(t, err)
	return o
}

func mine() *order.CourierID {
	c := me
	return &c
}

func TestGetOrderFeedQueryHandler(t *testing.T) {
	t.Run("no feed loaded", func(t *testing.T) {
		handler := queries.NewGetOrderFeedQueryHandler(memory.NewFeedStore())

		_, err := handler.Handle(t.Context(), queries.NewGetOrderFeedQuery())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("maps buckets and counters", func(t *testing.T) {
		home := point(t, 8.98, -79.52)
		item, err := order.NewItem("Sancocho", 2, 4.25, 0)
		require.NoError(t, err)
		orderedAt := time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC)

		f, err := feed.Partition(me, []*order.Order{
			restore(t, 1, order.Pending, nil, order.Details{
				Customer:      order.Customer{Name: "Ana"},
				Address:       order.Address{Full: "Calle 50"},
				Total:         8.5,
				PaymentMethod: "efectivo",
				OrderedAt:     orderedAt,
				Items:         []order.Item{item},
			}),
			restore(t, 2, order.EnRoute, mine(), order.Details{
				Customer: order.Customer{Name: "Luis", Phone: "6000-0000"},
				Address:  order.Address{Full: "Vía España", Reference: "Torre B", Location: &home},
			}),
			restore(t, 3, order.Delivered, mine(), order.Details{}),
		}, loadedAt)
		require.NoError(t, err)
		require.NoError(t, f.Select(2))

		store := memory.NewFeedStore()
		store.Put(f)
		handler := queries.NewGetOrderFeedQueryHandler(store)

		got, err := handler.Handle(t.Context(), queries.NewGetOrderFeedQuery())

		require.NoError(t, err)
		assert.Equal(t, queries.StatsResponse{Total: 2, Delivered: 1, Pending: 1, Available: 1}, got.Stats)
		assert.Equal(t, "2026-03-01T17:00:00Z", got.LoadedAt)
		require.NotNil(t, got.Selected)
		assert.Equal(t, int64(2), *got.Selected)

		require.Len(t, got.Available, 1)
		available := got.Available[0]
		assert.Equal(t, int64(1), available.ID)
		assert.Equal(t, "pendiente", available.Status)
		assert.Nil(t, available.CourierID)
		assert.Nil(t, available.Location)
		assert.Equal(t, "efectivo", available.PaymentMethod)
		require.NotNil(t, available.OrderedAt)
		assert.Equal(t, orderedAt, *available.OrderedAt)
		assert.Equal(t, []queries.ItemResponse{
			{ProductName: "Sancocho", Quantity: 2, UnitPrice: 4.25, LineTotal: 8.5},
		}, available.Items)

		require.Len(t, got.InProgress, 1)
		enRoute := got.InProgress[0]
		assert.Equal(t, "enviado", enRoute.Status)
		require.NotNil(t, enRoute.CourierID)
		assert.Equal(t, int64(me), *enRoute.CourierID)
		assert.Equal(t, &queries.PointResponse{Lat: 8.98, Lng: -79.52}, enRoute.Location)
		assert.Equal(t, "Torre B", enRoute.AddressReference)
		assert.Nil(t, enRoute.OrderedAt)
		assert.Empty(t, enRoute.Items)
	})

	t.Run("empty feed after a failed load", func(t *testing.T) {
		store := memory.NewFeedStore()
		store.Put(feed.Empty(me, loadedAt))
		handler := queries.NewGetOrderFeedQueryHandler(store)

		got, err := handler.Handle(t.Context(), queries.NewGetOrderFeedQuery())

		require.NoError(t, err)
		assert.Equal(t, queries.StatsResponse{}, got.Stats)
		assert.NotNil(t, got.Available)
		assert.NotNil(t, got.InProgress)
		assert.Nil(t, got.Selected)
	})

	t.Run("query not constructed", func(t *testing.T) {
		handler := queries.NewGetOrderFeedQueryHandler(memory.NewFeedStore())

		_, err := handler.Handle(t.Context(), queries.GetOrderFeedQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderFeedQueryIsNotConstructed)
	})
}

func TestGetMapViewQueryHandler(t *testing.T) {
	courierAt := point(t, 8.98, -79.52)
	customerAt := point(t, 8.99, -79.51)

	open := func(t *testing.T) (*memory.ViewRegistry, *mapview.View) {
		t.Helper()
		v, err := mapview.NewView(2, mapview.Customer{Name: "Luis", Address: "Vía España"},
			courierAt, customerAt, "https://tiles.local/style.json", loadedAt)
		require.NoError(t, err)
		views := memory.NewViewRegistry()
		views.Open(v)
		return views, v
	}

	t.Run("renders the open view", func(t *testing.T) {
		views, v := open(t)
		handler := queries.NewGetMapViewQueryHandler(views)
		query, err := queries.NewGetMapViewQuery(2)
		require.NoError(t, err)

		got, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, v.Handle().String(), got.Handle)
		assert.Equal(t, int64(2), got.OrderID)
		assert.Equal(t, queries.PointResponse{Lat: 8.98, Lng: -79.52}, got.Courier)
		assert.Equal(t, queries.PointResponse{Lat: 8.99, Lng: -79.51}, got.Customer)
		assert.InDelta(t, v.DistanceKm(), got.DistanceKm, 1e-9)
		assert.Equal(t, queries.PointResponse{Lat: 8.98, Lng: -79.52}, got.Bounds.SouthWest)
		assert.Equal(t, queries.PointResponse{Lat: 8.99, Lng: -79.51}, got.Bounds.NorthEast)
		assert.Equal(t, "https://tiles.local/style.json", got.StyleURL)

		require.Len(t, got.Markers, 2)
		assert.Equal(t, mapview.CourierColor, got.Markers[0].Color)
		assert.Equal(t, mapview.CustomerColor, got.Markers[1].Color)
		assert.Contains(t, got.Markers[1].Popup, "Luis")

		assert.Equal(t, "straight", got.Route.Kind)
		assert.Equal(t, string(mapview.LineDashed), got.Route.Style)
		assert.Len(t, got.Route.Points, 2)
	})

	t.Run("no view for the order", func(t *testing.T) {
		views, _ := open(t)
		handler := queries.NewGetMapViewQueryHandler(views)
		query, err := queries.NewGetMapViewQuery(3)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("invalid order id", func(t *testing.T) {
		_, err := queries.NewGetMapViewQuery(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("query not constructed", func(t *testing.T) {
		handler := queries.NewGetMapViewQueryHandler(memory.NewViewRegistry())

		_, err := handler.Handle(t.Context(), queries.GetMapViewQuery{})

		require.ErrorIs(t, err, queries.ErrGetMapViewQueryIsNotConstructed)
	})
}

func TestGetTrackingStatusQueryHandler(t *testing.T) {
	t.Run("pending before the first acquisition", func(t *testing.T) {
		handler := queries.NewGetTrackingStatusQueryHandler(memory.NewTrackerStore())

		got, err := handler.Handle(t.Context(), queries.NewGetTrackingStatusQuery())

		require.NoError(t, err)
		assert.Equal(t, queries.GetTrackingStatusQueryResponse{Permission: "pending"}, got)
	})

	t.Run("denied shows the banner", func(t *testing.T) {
		trackers := memory.NewTrackerStore()
		require.NoError(t, trackers.Update(func(tr *courier.Tracker) error {
			tr.Deny(courier.ErrPermissionDenied)
			return nil
		}))
		handler := queries.NewGetTrackingStatusQueryHandler(trackers)

		got, err := handler.Handle(t.Context(), queries.NewGetTrackingStatusQuery())

		require.NoError(t, err)
		assert.Equal(t, "denied", got.Permission)
		assert.Equal(t, "location permission denied by the user. Some features may be unavailable.", got.Banner)
		assert.Nil(t, got.Latest)
	})

	t.Run("granted carries the latest fix", func(t *testing.T) {
		capturedAt := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
		p, err := courier.NewPosition(point(t, 8.98, -79.52), 12, capturedAt)
		require.NoError(t, err)
		trackers := memory.NewTrackerStore()
		require.NoError(t, trackers.Update(func(tr *courier.Tracker) error {
			return tr.Grant(p)
		}))
		handler := queries.NewGetTrackingStatusQueryHandler(trackers)

		got, err := handler.Handle(t.Context(), queries.NewGetTrackingStatusQuery())

		require.NoError(t, err)
		assert.Equal(t, "granted", got.Permission)
		assert.Empty(t, got.Banner)
		require.NotNil(t, got.Latest)
		assert.Equal(t, queries.PositionResponse{
			PointResponse: queries.PointResponse{Lat: 8.98, Lng: -79.52},
			Accuracy:      12,
			CapturedAt:    capturedAt,
		}, *got.Latest)
	})

	t.Run("query not constructed", func(t *testing.T) {
		handler := queries.NewGetTrackingStatusQueryHandler(memory.NewTrackerStore())

		_, err := handler.Handle(t.Context(), queries.GetTrackingStatusQuery{})

		require.ErrorIs(t, err, queries.ErrGetTrackingStatusQueryIsNotConstructed)
	})
}
