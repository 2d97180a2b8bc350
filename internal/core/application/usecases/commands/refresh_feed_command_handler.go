package commands

import (
	"context"
	"errors"
	"time"

	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/ports"
)

// RefreshFeedCommandHandler fetches the visible orders and partitions them
// into the courier's buckets.
//
// Failure handling:
//   - backend 401: the session is torn down and the error returned
//   - any other failure: the feed is reset to empty and the error returned
type RefreshFeedCommandHandler struct {
	sessions SessionKeeper
	gateway  ports.OrderGateway
	feeds    ports.FeedStore
}

func NewRefreshFeedCommandHandler(sessions SessionKeeper, gateway ports.OrderGateway, feeds ports.FeedStore) RefreshFeedCommandHandler {
	return RefreshFeedCommandHandler{
		sessions: sessions,
		gateway:  gateway,
		feeds:    feeds,
	}
}

func (h RefreshFeedCommandHandler) Handle(ctx context.Context, command RefreshFeedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, me, err := h.sessions.Courier(ctx)
	if err != nil {
		return err
	}

	orders, err := h.gateway.List(ctx, s.AccessToken())
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			return h.sessions.BackendFailed(ctx, err)
		}
		h.feeds.Put(feed.Empty(me, time.Now()))
		return err
	}

	f, err := feed.Partition(me, orders, time.Now())
	if err != nil {
		h.feeds.Put(feed.Empty(me, time.Now()))
		return err
	}

	h.feeds.Put(f)
	return nil
}
