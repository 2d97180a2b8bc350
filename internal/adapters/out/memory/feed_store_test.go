package memory_test

import (
	"errors"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/memory"
	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeed(t *testing.T) *feed.Feed {
	t.Helper()
	me := order.CourierID(1)
	o1, err := order.RestoreOrder(1, order.Pending, nil, order.Details{})
	require.NoError(t, err)
	o2, err := order.RestoreOrder(2, order.EnRoute, &me, order.Details{})
	require.NoError(t, err)
	f, err := feed.Partition(me, []*order.Order{o1, o2}, time.Now())
	require.NoError(t, err)
	return f
}

func TestFeedStore(t *testing.T) {
	s := memory.NewFeedStore()

	_, ok := s.Get()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Update(func(*feed.Feed) error { return nil }), errs.ErrObjectNotFound)

	s.Put(newFeed(t))
	f, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, 1, f.Stats().Pending)

	t.Run("copies do not leak", func(t *testing.T) {
		_, err := f.MarkDelivered(2)
		require.NoError(t, err)

		again, _ := s.Get()
		assert.Equal(t, 1, again.Stats().Pending)
	})

	t.Run("failed update is discarded", func(t *testing.T) {
		err := s.Update(func(f *feed.Feed) error {
			_, _ = f.MarkDelivered(2)
			return errors.New("boom")
		})

		require.EqualError(t, err, "boom")
		again, _ := s.Get()
		assert.Equal(t, 0, again.Stats().Delivered)
	})

	t.Run("successful update is kept", func(t *testing.T) {
		err := s.Update(func(f *feed.Feed) error {
			_, err := f.MarkDelivered(2)
			return err
		})

		require.NoError(t, err)
		again, _ := s.Get()
		assert.Equal(t, 1, again.Stats().Delivered)
	})

	s.Clear()
	_, ok = s.Get()
	assert.False(t, ok)
}
