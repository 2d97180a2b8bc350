package commands

import (
	"errors"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/guard"
)

var ErrOpenMapViewCommandIsNotConstructed = errors.New(
	"OpenMapViewCommand must be created via NewOpenMapViewCommand constructor",
)

// OpenMapViewCommand opens, or reopens, the delivery map of an in-progress order.
type OpenMapViewCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewOpenMapViewCommand(orderID int64) (OpenMapViewCommand, error) {
	id, err := validOrderID(orderID)
	if err != nil {
		return OpenMapViewCommand{}, err
	}
	return OpenMapViewCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenMapViewCommand) Validate() error {
	return c.guard.Validate(ErrOpenMapViewCommandIsNotConstructed)
}

func (c OpenMapViewCommand) OrderID() order.ID { return c.orderID }
