package commands

import (
	"errors"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/guard"
)

var ErrCloseMapViewCommandIsNotConstructed = errors.New(
	"CloseMapViewCommand must be created via NewCloseMapViewCommand constructor",
)

// CloseMapViewCommand disposes the map of an order.
type CloseMapViewCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewCloseMapViewCommand(orderID int64) (CloseMapViewCommand, error) {
	id, err := validOrderID(orderID)
	if err != nil {
		return CloseMapViewCommand{}, err
	}
	return CloseMapViewCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseMapViewCommand) Validate() error {
	return c.guard.Validate(ErrCloseMapViewCommandIsNotConstructed)
}

func (c CloseMapViewCommand) OrderID() order.ID { return c.orderID }
