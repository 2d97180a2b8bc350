package order_test

import (
	"testing"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courierID(id int64) *order.CourierID {
	c := order.CourierID(id)
	return &c
}

func TestRestoreOrder(t *testing.T) {
	location, err := kernel.NewGeoPoint(9.0, -82.4)
	require.NoError(t, err)
	item, err := order.NewItem("Empanada", 3, 1.5, 0)
	require.NoError(t, err)

	t.Run("restores all fields", func(t *testing.T) {
		o, err := order.RestoreOrder(42, order.EnRoute, courierID(7), order.Details{
			Customer:      order.Customer{Name: "Ana", Phone: "6000-0000"},
			Address:       order.Address{Full: "Calle 50", Location: &location},
			Total:         4.5,
			PaymentMethod: "efectivo",
			Items:         []order.Item{item},
		})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.ID(42), o.ID())
		assert.Equal(t, order.EnRoute, o.Status())
		assert.True(t, o.IsAssignedTo(7))
		assert.False(t, o.IsUnassigned())
		assert.Equal(t, "Ana", o.Customer().Name)
		assert.InDelta(t, 4.5, o.Total(), 0)
		require.Len(t, o.Items(), 1)
		assert.InDelta(t, 4.5, o.Items()[0].LineTotal(), 1e-9)

		got, ok := o.CustomerLocation()
		require.True(t, ok)
		assert.Equal(t, location, got)
	})

	t.Run("unassigned order has no courier", func(t *testing.T) {
		o, err := order.RestoreOrder(1, order.Pending, nil, order.Details{})

		require.NoError(t, err)
		assert.Nil(t, o.Courier())
		assert.True(t, o.IsUnassigned())
		_, ok := o.CustomerLocation()
		assert.False(t, ok)
	})

	t.Run("joins every validation error", func(t *testing.T) {
		o, err := order.RestoreOrder(0, order.Unknown, courierID(-1), order.Details{Total: -1})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order id is invalid")
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "courier id is invalid")
		assert.Contains(t, err.Error(), "total is invalid")
	})

	t.Run("rejects unconstructed location", func(t *testing.T) {
		_, err := order.RestoreOrder(1, order.Pending, nil, order.Details{
			Address: order.Address{Location: &kernel.GeoPoint{}},
		})

		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
}

func TestOrder_Accept(t *testing.T) {
	t.Run("assigns courier and moves en route", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.Pending, nil, order.Details{})

		require.NoError(t, o.Accept(7))

		assert.Equal(t, order.EnRoute, o.Status())
		assert.True(t, o.IsAssignedTo(7))
	})

	t.Run("rejects order held by another courier", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.EnRoute, courierID(8), order.Details{})

		require.ErrorIs(t, o.Accept(7), order.ErrOrderTakenByAnotherCourier)
		assert.True(t, o.IsAssignedTo(8))
	})

	t.Run("rejects cancelled order", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.Cancelled, nil, order.Details{})

		require.Error(t, o.Accept(7))
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Courier())
	})
}

func TestOrder_Deliver(t *testing.T) {
	t.Run("marks delivered", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.EnRoute, courierID(7), order.Details{})

		require.NoError(t, o.Deliver(7))

		assert.True(t, o.IsDelivered())
	})

	t.Run("rejects foreign order", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.EnRoute, courierID(8), order.Details{})

		require.ErrorIs(t, o.Deliver(7), order.ErrOrderNotAssignedToCourier)
		assert.Equal(t, order.EnRoute, o.Status())
	})

	t.Run("rejects already delivered", func(t *testing.T) {
		o, _ := order.RestoreOrder(5, order.Delivered, courierID(7), order.Details{})

		require.Error(t, o.Deliver(7))
	})
}

func TestNewItem(t *testing.T) {
	item, err := order.NewItem("Sancocho", 2, 4.25, 9)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, item.LineTotal(), 0)

	_, err = order.NewItem("Sancocho", -1, -4, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "unit price")
}
