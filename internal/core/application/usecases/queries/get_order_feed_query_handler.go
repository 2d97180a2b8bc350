package queries

import (
	"context"
	"time"

	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

// GetOrderFeedQueryHandler reads the feed store. It returns
// errs.ErrObjectNotFound when no feed was loaded yet.
type GetOrderFeedQueryHandler struct {
	feeds ports.FeedStore
}

func NewGetOrderFeedQueryHandler(feeds ports.FeedStore) GetOrderFeedQueryHandler {
	return GetOrderFeedQueryHandler{feeds: feeds}
}

func (h GetOrderFeedQueryHandler) Handle(_ context.Context, query GetOrderFeedQuery) (GetOrderFeedQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFeedQueryResponse{}, err
	}

	f, ok := h.feeds.Get()
	if !ok {
		return GetOrderFeedQueryResponse{}, errs.NewObjectNotFoundError("feed", "current")
	}

	stats := f.Stats()
	r := GetOrderFeedQueryResponse{
		Stats: StatsResponse{
			Total:     stats.Total,
			Delivered: stats.Delivered,
			Pending:   stats.Pending,
			Available: stats.Available,
		},
		Available:  make([]OrderResponse, 0, stats.Available),
		InProgress: make([]OrderResponse, 0, stats.Pending),
		LoadedAt:   f.LoadedAt().UTC().Format(time.RFC3339),
	}
	for _, o := range f.Available() {
		r.Available = append(r.Available, newOrderResponse(o))
	}
	for _, o := range f.InProgress() {
		r.InProgress = append(r.InProgress, newOrderResponse(o))
	}
	if id, selected := f.Selected(); selected {
		v := int64(id)
		r.Selected = &v
	}
	return r, nil
}
