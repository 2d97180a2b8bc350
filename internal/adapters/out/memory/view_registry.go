package memory

import (
	"slices"
	"sync"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/metrics"
)

// subscriberBuffer bounds how far a slow subscriber may fall behind before
// updates for it are dropped. Disposal is never dropped: it closes the channel.
const subscriberBuffer = 8

type subscriber struct {
	orderID order.ID
	events  chan ports.ViewEvent
}

// ViewRegistry owns the open map views, one per order, remembering the order
// in which they were opened.
type ViewRegistry struct {
	mu          sync.Mutex
	views       map[order.ID]*mapview.View
	opened      []order.ID
	subscribers map[int]subscriber
	nextSubID   int
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{
		views:       make(map[order.ID]*mapview.View),
		subscribers: make(map[int]subscriber),
	}
}

// Open stores v. A previous view of the same order is disposed and v takes
// its place at the end of the iteration order.
func (r *ViewRegistry) Open(v *mapview.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.open(v)
}

// OpenIf stores v like Open when admit succeeds. admit runs under the registry
// lock, so a Close issued after the state admit checks has changed always
// lands after the open.
func (r *ViewRegistry) OpenIf(v *mapview.View, admit func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := admit(); err != nil {
		return err
	}
	r.open(v)
	return nil
}

func (r *ViewRegistry) open(v *mapview.View) {
	id := v.OrderID()
	if _, ok := r.views[id]; ok {
		r.opened = slices.DeleteFunc(r.opened, func(o order.ID) bool { return o == id })
	}
	r.views[id] = v.Clone()
	r.opened = append(r.opened, id)
	metrics.SetOpenMapViews(len(r.views))
	r.notify(id, ports.ViewEvent{View: v.Clone()})
}

func (r *ViewRegistry) Get(id order.ID) (*mapview.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("map view", id)
	}
	return v.Clone(), nil
}

func (r *ViewRegistry) All() []*mapview.View {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*mapview.View, 0, len(r.opened))
	for _, id := range r.opened {
		out = append(out, r.views[id].Clone())
	}
	return out
}

// Update applies fn to a copy of the current view with handle and keeps it when
// fn succeeds.
func (r *ViewRegistry) Update(handle kernel.UUID, fn func(v *mapview.View) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, v := range r.views {
		if !v.Handle().IsEqual(handle) {
			continue
		}
		next := v.Clone()
		if err := fn(next); err != nil {
			return err
		}
		r.views[id] = next
		r.notify(id, ports.ViewEvent{View: next.Clone()})
		return nil
	}
	return ports.ErrViewNotCurrent
}

func (r *ViewRegistry) Close(id order.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dispose(id)
}

func (r *ViewRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range slices.Clone(r.opened) {
		r.dispose(id)
	}
}

// Subscribe streams the events of id. The current view, if any, is sent first.
// The channel is closed by cancel or when the view of id is disposed,
// whichever comes first.
func (r *ViewRegistry) Subscribe(id order.ID) (<-chan ports.ViewEvent, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subID := r.nextSubID
	r.nextSubID++
	sub := subscriber{orderID: id, events: make(chan ports.ViewEvent, subscriberBuffer)}
	r.subscribers[subID] = sub

	if v, ok := r.views[id]; ok {
		sub.events <- ports.ViewEvent{View: v.Clone()}
	}

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if _, ok := r.subscribers[subID]; ok {
			delete(r.subscribers, subID)
			close(sub.events)
		}
	}
	return sub.events, cancel
}

func (r *ViewRegistry) dispose(id order.ID) bool {
	if _, ok := r.views[id]; !ok {
		return false
	}
	delete(r.views, id)
	r.opened = slices.DeleteFunc(r.opened, func(o order.ID) bool { return o == id })
	metrics.SetOpenMapViews(len(r.views))
	r.notify(id, ports.ViewEvent{Closed: true})
	for subID, sub := range r.subscribers {
		if sub.orderID == id {
			delete(r.subscribers, subID)
			close(sub.events)
		}
	}
	return true
}

// notify never blocks; a full subscriber misses the update.
func (r *ViewRegistry) notify(id order.ID, ev ports.ViewEvent) {
	for _, sub := range r.subscribers {
		if sub.orderID != id {
			continue
		}
		select {
		case sub.events <- ev:
		default:
		}
	}
}
