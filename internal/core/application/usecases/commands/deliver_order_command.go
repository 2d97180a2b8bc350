package commands

import (
	"errors"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand marks one of the courier's in-progress orders delivered.
type DeliverOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID int64) (DeliverOrderCommand, error) {
	id, err := validOrderID(orderID)
	if err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() order.ID { return c.orderID }
