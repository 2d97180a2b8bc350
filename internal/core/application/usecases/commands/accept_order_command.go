package commands

import (
	"errors"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand takes an available order for the logged-in courier.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(42)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AcceptOrderCommand struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID int64) (AcceptOrderCommand, error) {
	id, err := validOrderID(orderID)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() order.ID { return c.orderID }
