package memory

import (
	"sync"

	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/pkg/errs"
)

// FeedStore keeps the latest order feed.
type FeedStore struct {
	mu   sync.RWMutex
	feed *feed.Feed
}

func NewFeedStore() *FeedStore {
	return &FeedStore{}
}

func (s *FeedStore) Get() (*feed.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.feed == nil {
		return nil, false
	}
	return s.feed.Clone(), true
}

func (s *FeedStore) Put(f *feed.Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feed = f.Clone()
}

// Update runs fn on a copy and keeps it only when fn succeeds.
func (s *FeedStore) Update(fn func(f *feed.Feed) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.feed == nil {
		return errs.NewObjectNotFoundError("feed", "current")
	}

	next := s.feed.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.feed = next
	return nil
}

func (s *FeedStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feed = nil
}
