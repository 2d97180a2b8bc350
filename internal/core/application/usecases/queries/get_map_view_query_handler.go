package queries

import (
	"context"

	"courier-tracker/internal/core/ports"
)

type GetMapViewQueryHandler struct {
	views ports.MapViewRegistry
}

func NewGetMapViewQueryHandler(views ports.MapViewRegistry) GetMapViewQueryHandler {
	return GetMapViewQueryHandler{views: views}
}

func (h GetMapViewQueryHandler) Handle(_ context.Context, query GetMapViewQuery) (MapViewResponse, error) {
	if err := query.Validate(); err != nil {
		return MapViewResponse{}, err
	}

	v, err := h.views.Get(query.OrderID())
	if err != nil {
		return MapViewResponse{}, err
	}
	return NewMapViewResponse(v), nil
}
