package queries

import (
	"errors"
	"fmt"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

var ErrGetMapViewQueryIsNotConstructed = errors.New(
	"GetMapViewQuery must be created via NewGetMapViewQuery constructor",
)

// GetMapViewQuery reads the open map of one order.
type GetMapViewQuery struct {
	orderID order.ID

	guard guard.ConstructorGuard
}

func NewGetMapViewQuery(orderID int64) (GetMapViewQuery, error) {
	if orderID <= 0 {
		return GetMapViewQuery{}, errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", orderID))
	}
	return GetMapViewQuery{orderID: order.ID(orderID), guard: guard.NewConstructorGuard()}, nil
}

func (q GetMapViewQuery) Validate() error {
	return q.guard.Validate(ErrGetMapViewQueryIsNotConstructed)
}

func (q GetMapViewQuery) OrderID() order.ID { return q.orderID }
