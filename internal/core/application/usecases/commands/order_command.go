package commands

import (
	"fmt"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"
)

func validOrderID(id int64) (order.ID, error) {
	if id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	return order.ID(id), nil
}
