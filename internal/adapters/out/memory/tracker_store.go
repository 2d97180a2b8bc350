package memory

import (
	"sync"

	"courier-tracker/internal/core/domain/model/courier"
)

// TrackerStore keeps the geolocation tracker. It starts pending.
type TrackerStore struct {
	mu      sync.Mutex
	tracker courier.Tracker
}

func NewTrackerStore() *TrackerStore {
	return &TrackerStore{tracker: courier.NewTracker()}
}

func (s *TrackerStore) Get() courier.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tracker
}

// Update runs fn on a copy and keeps it only when fn succeeds.
func (s *TrackerStore) Update(fn func(t *courier.Tracker) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.tracker
	if err := fn(&next); err != nil {
		return err
	}
	s.tracker = next
	return nil
}

func (s *TrackerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker = courier.NewTracker()
}
