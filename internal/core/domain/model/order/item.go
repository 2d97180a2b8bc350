package order

import (
	"errors"
	"fmt"

	"courier-tracker/internal/pkg/errs"
)

// Item is one line of an order as shown in the order detail.
type Item struct {
	productName string
	quantity    int
	unitPrice   float64
	lineTotal   float64
}

// NewItem builds a line item. A zero lineTotal is derived from quantity and unitPrice.
func NewItem(productName string, quantity int, unitPrice, lineTotal float64) (Item, error) {
	var errList []error
	if quantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is negative", quantity)))
	}
	if unitPrice < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%.2f is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	if lineTotal == 0 {
		lineTotal = float64(quantity) * unitPrice
	}

	return Item{
		productName: productName,
		quantity:    quantity,
		unitPrice:   unitPrice,
		lineTotal:   lineTotal,
	}, nil
}

func (i Item) ProductName() string { return i.productName }
func (i Item) Quantity() int       { return i.quantity }
func (i Item) UnitPrice() float64  { return i.unitPrice }
func (i Item) LineTotal() float64  { return i.lineTotal }
