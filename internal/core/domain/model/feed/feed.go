package feed

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"
)

// ErrFeedIsNotConstructed is returned when a Feed was not built by Partition or Empty.
var ErrFeedIsNotConstructed = errors.New("Feed must be created via Partition or Empty")

// Stats are the counters shown on the courier dashboard.
type Stats struct {
	// Total counts orders assigned to the courier, delivered or not.
	Total int
	// Delivered counts the courier's delivered orders.
	Delivered int
	// Pending counts the courier's orders not yet delivered.
	Pending int
	// Available counts unassigned orders that are not delivered.
	Available int
}

// Feed is the courier's partition of the orders the backend returned.
//
// Every order lands in at most one bucket, derived only from its courier and
// status:
//   - available: unassigned and not delivered
//   - in progress: assigned to this courier and not delivered
//   - delivered: assigned to this courier and delivered (counted, not listed)
//
// Orders held by other couriers are dropped.
type Feed struct {
	courierID  order.CourierID
	available  []*order.Order
	inProgress []*order.Order
	delivered  []*order.Order
	stats      Stats
	selected   *order.ID
	loadedAt   time.Time

	isConstructed bool
}

// Empty returns a feed with no orders, used after a failed load.
func Empty(courierID order.CourierID, loadedAt time.Time) *Feed {
	return &Feed{
		courierID:     courierID,
		available:     []*order.Order{},
		inProgress:    []*order.Order{},
		delivered:     []*order.Order{},
		loadedAt:      loadedAt,
		isConstructed: true,
	}
}

// Partition splits orders into buckets for courierID and computes Stats.
//
// Example:
//
//	f, err := feed.Partition(me, orders, time.Now())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.Stats().Available)
func Partition(courierID order.CourierID, orders []*order.Order, loadedAt time.Time) (*Feed, error) {
	if courierID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("courier id is invalid", fmt.Errorf("%d is not greater than 0", courierID))
	}

	f := Empty(courierID, loadedAt)
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}

		switch {
		case o.IsAssignedTo(courierID) && o.IsDelivered():
			f.delivered = append(f.delivered, o)
		case o.IsAssignedTo(courierID):
			f.inProgress = append(f.inProgress, o)
		case o.IsUnassigned() && !o.IsDelivered():
			f.available = append(f.available, o)
		}
	}

	f.stats = Stats{
		Total:     len(f.delivered) + len(f.inProgress),
		Delivered: len(f.delivered),
		Pending:   len(f.inProgress),
		Available: len(f.available),
	}

	return f, nil
}

// Validate ensures the feed was built by a constructor.
func (f *Feed) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFeedIsNotConstructed
	}
	return nil
}

func (f *Feed) CourierID() order.CourierID { return f.courierID }
func (f *Feed) Stats() Stats               { return f.stats }
func (f *Feed) LoadedAt() time.Time        { return f.loadedAt }

// Available returns the unassigned orders.
func (f *Feed) Available() []*order.Order { return slices.Clone(f.available) }

// InProgress returns the courier's undelivered orders.
func (f *Feed) InProgress() []*order.Order { return slices.Clone(f.inProgress) }

// Delivered returns the courier's delivered orders.
func (f *Feed) Delivered() []*order.Order { return slices.Clone(f.delivered) }

// FindAvailable looks an order up in the available bucket.
func (f *Feed) FindAvailable(id order.ID) (*order.Order, error) {
	if i := indexOf(f.available, id); i >= 0 {
		return f.available[i], nil
	}
	return nil, errs.NewObjectNotFoundError("available order", id)
}

// FindInProgress looks an order up in the in-progress bucket.
func (f *Feed) FindInProgress(id order.ID) (*order.Order, error) {
	if i := indexOf(f.inProgress, id); i >= 0 {
		return f.inProgress[i], nil
	}
	return nil, errs.NewObjectNotFoundError("in-progress order", id)
}

// Select opens the detail of a listed order.
func (f *Feed) Select(id order.ID) error {
	if indexOf(f.available, id) < 0 && indexOf(f.inProgress, id) < 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	f.selected = &id
	return nil
}

// Selected returns the order whose detail is open, if any.
func (f *Feed) Selected() (order.ID, bool) {
	if f.selected == nil {
		return 0, false
	}
	return *f.selected, true
}

// Accept moves an order the backend confirmed as accepted from available to in
// progress. accepted must carry this courier. Counters move as
// available-1, pending+1, total+1 and the detail selection closes.
func (f *Feed) Accept(accepted *order.Order) error {
	if err := accepted.Validate(); err != nil {
		return err
	}
	if !accepted.IsAssignedTo(f.courierID) {
		return order.ErrOrderNotAssignedToCourier
	}

	i := indexOf(f.available, accepted.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("available order", accepted.ID())
	}

	f.available = slices.Delete(f.available, i, i+1)
	f.inProgress = append(f.inProgress, accepted)
	f.stats.Available--
	f.stats.Pending++
	f.stats.Total++
	f.selected = nil
	return nil
}

// MarkDelivered moves an in-progress order to delivered. Counters move as
// delivered+1 and pending-1 (never below zero).
func (f *Feed) MarkDelivered(id order.ID) (*order.Order, error) {
	i := indexOf(f.inProgress, id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("in-progress order", id)
	}

	o := f.inProgress[i]
	if err := o.Deliver(f.courierID); err != nil {
		return nil, err
	}

	f.inProgress = slices.Delete(f.inProgress, i, i+1)
	f.delivered = append(f.delivered, o)
	f.stats.Delivered++
	f.stats.Pending = max(f.stats.Pending-1, 0)
	if f.selected != nil && *f.selected == id {
		f.selected = nil
	}
	return o, nil
}

// Clone returns a deep copy safe to hand out of a store.
func (f *Feed) Clone() *Feed {
	if f == nil {
		return nil
	}
	c := *f
	c.available = cloneOrders(f.available)
	c.inProgress = cloneOrders(f.inProgress)
	c.delivered = cloneOrders(f.delivered)
	if f.selected != nil {
		id := *f.selected
		c.selected = &id
	}
	return &c
}

func indexOf(orders []*order.Order, id order.ID) int {
	return slices.IndexFunc(orders, func(o *order.Order) bool { return o.ID() == id })
}

func cloneOrders(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
