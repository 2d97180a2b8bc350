package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")

	// ErrOrderTakenByAnotherCourier is returned when accepting an order that already has a courier.
	ErrOrderTakenByAnotherCourier = errors.New("order is already assigned to another courier")

	// ErrOrderNotAssignedToCourier is returned when delivering an order owned by someone else.
	ErrOrderNotAssignedToCourier = errors.New("order is not assigned to this courier")
)

// ID is the backend identifier of an order.
type ID int64

// CourierID is the backend identifier of a courier profile.
type CourierID int64

// Customer holds the contact fields shown in the order detail.
type Customer struct {
	Name     string
	Username string
	Phone    string
}

// Address is the delivery destination. Location is nil when the backend has no
// usable coordinates and the free text must be geocoded.
type Address struct {
	Name      string
	Full      string
	Reference string
	Location  *kernel.GeoPoint
}

// Details carries the descriptive fields of an order.
type Details struct {
	Customer      Customer
	Address       Address
	Total         float64
	PaymentMethod string
	OrderedAt     time.Time
	Items         []Item
}

// Order is the tracker's view of a backend order. The backend owns the order;
// the tracker only reads snapshots and applies the transitions it requested
// once the backend has confirmed them.
//
// Invariants:
//   - positive identifier
//   - valid status
//   - non-negative total
//   - built through RestoreOrder
type Order struct {
	id        ID
	courierID *CourierID
	status    Status
	details   Details

	isConstructed bool
}

// RestoreOrder rebuilds an order from backend data.
//
// Example:
//
//	o, err := order.RestoreOrder(42, order.Pending, nil, order.Details{
//	    Address: order.Address{Full: "Calle 50, Bella Vista"},
//	    Total:   12.5,
//	})
func RestoreOrder(id ID, status Status, courierID *CourierID, details Details) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setCourier(courierID),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() ID                { return o.id }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Customer() Customer    { return o.details.Customer }
func (o *Order) Address() Address      { return o.details.Address }
func (o *Order) Total() float64        { return o.details.Total }
func (o *Order) PaymentMethod() string { return o.details.PaymentMethod }
func (o *Order) OrderedAt() time.Time  { return o.details.OrderedAt }

// Items returns a copy of the line items.
func (o *Order) Items() []Item {
	return slices.Clone(o.details.Items)
}

// Courier returns the assigned courier, nil if unassigned.
func (o *Order) Courier() *CourierID {
	return o.courierID
}

// CustomerLocation returns the stored delivery coordinates, if any.
func (o *Order) CustomerLocation() (kernel.GeoPoint, bool) {
	if o.details.Address.Location == nil {
		return kernel.GeoPoint{}, false
	}
	return *o.details.Address.Location, true
}

// IsUnassigned reports whether no courier holds the order.
func (o *Order) IsUnassigned() bool {
	return o.courierID == nil
}

// IsAssignedTo reports whether courier holds the order.
func (o *Order) IsAssignedTo(courier CourierID) bool {
	return o.courierID != nil && *o.courierID == courier
}

// IsDelivered reports whether the order reached Delivered.
func (o *Order) IsDelivered() bool {
	return o.status == Delivered
}

// ValidateAccept checks that courier may take the order without changing it.
func (o *Order) ValidateAccept(courier CourierID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsUnassigned() && !o.IsAssignedTo(courier) {
		return ErrOrderTakenByAnotherCourier
	}
	return o.status.ValidateAccept()
}

// Accept assigns courier and moves the order EnRoute. It mirrors the update the
// backend applies for an accept request.
func (o *Order) Accept(courier CourierID) error {
	if err := o.ValidateAccept(courier); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courier
	return nil
}

// ValidateDeliver checks that courier may mark the order delivered.
func (o *Order) ValidateDeliver(courier CourierID) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.IsAssignedTo(courier) {
		return ErrOrderNotAssignedToCourier
	}
	_, err := o.status.Deliver()
	return err
}

// Deliver moves the order to Delivered.
func (o *Order) Deliver(courier CourierID) error {
	if err := o.ValidateDeliver(courier); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id ID) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCourier(courierID *CourierID) error {
	if courierID == nil {
		o.courierID = nil
		return nil
	}
	if *courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier id is invalid", fmt.Errorf("%d is not greater than 0", *courierID))
	}
	id := *courierID
	o.courierID = &id
	return nil
}

func (o *Order) setDetails(details Details) error {
	if details.Total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid", fmt.Errorf("%.2f is negative", details.Total))
	}
	if loc := details.Address.Location; loc != nil {
		if err := loc.Validate(); err != nil {
			return err
		}
		p := *loc
		details.Address.Location = &p
	}
	details.Items = slices.Clone(details.Items)
	o.details = details
	return nil
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.courierID != nil {
		id := *o.courierID
		c.courierID = &id
	}
	if loc := o.details.Address.Location; loc != nil {
		p := *loc
		c.details.Address.Location = &p
	}
	c.details.Items = slices.Clone(o.details.Items)
	return &c
}
