package queries

import (
	"context"

	"courier-tracker/internal/core/ports"
)

type GetTrackingStatusQueryHandler struct {
	trackers ports.TrackerStore
}

func NewGetTrackingStatusQueryHandler(trackers ports.TrackerStore) GetTrackingStatusQueryHandler {
	return GetTrackingStatusQueryHandler{trackers: trackers}
}

func (h GetTrackingStatusQueryHandler) Handle(_ context.Context, query GetTrackingStatusQuery) (GetTrackingStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingStatusQueryResponse{}, err
	}

	t := h.trackers.Get()
	r := GetTrackingStatusQueryResponse{
		Permission: t.Permission().String(),
		Banner:     t.Banner(),
	}
	if p, ok := t.Latest(); ok {
		pr := newPositionResponse(p)
		r.Latest = &pr
	}
	return r, nil
}
