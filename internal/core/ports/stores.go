package ports

import (
	"errors"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/mapview"
	"courier-tracker/internal/core/domain/model/order"
)

// ErrViewNotCurrent is returned when updating a view that was closed or
// replaced since the caller read it.
var ErrViewNotCurrent = errors.New("map view is no longer current")

// FeedStore holds the courier's order feed. Implementations hand out copies.
type FeedStore interface {
	// Get returns false when no feed was loaded yet.
	Get() (*feed.Feed, bool)
	Put(f *feed.Feed)
	// Update applies fn to the stored feed atomically. The change is discarded
	// when fn fails.
	Update(fn func(f *feed.Feed) error) error
	Clear()
}

// TrackerStore holds the geolocation tracker state.
type TrackerStore interface {
	Get() courier.Tracker
	// Update applies fn atomically. The change is discarded when fn fails.
	Update(fn func(t *courier.Tracker) error) error
	Reset()
}

// ViewEvent is delivered to view subscribers after each change.
type ViewEvent struct {
	View   *mapview.View
	Closed bool
}

// MapViewRegistry owns the open map views, at most one per order. Disposal
// happens on close, replacement, deliver, logout and shutdown.
type MapViewRegistry interface {
	// Open stores v, disposing the previous view of the same order.
	Open(v *mapview.View)
	// OpenIf opens v only when admit succeeds, running admit and the open
	// atomically with respect to Close.
	OpenIf(v *mapview.View, admit func() error) error
	Get(id order.ID) (*mapview.View, error)
	// All returns copies of the open views in the order they were opened.
	All() []*mapview.View
	// Update applies fn to the view with handle, or returns ErrViewNotCurrent.
	Update(handle kernel.UUID, fn func(v *mapview.View) error) error
	// Close disposes the view of id and reports whether one was open.
	Close(id order.ID) bool
	CloseAll()
	// Subscribe streams events for id. The channel closes on cancel or when
	// the view of id is disposed.
	Subscribe(id order.ID) (events <-chan ViewEvent, cancel func())
}
