package queries

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrGetOrderFeedQueryIsNotConstructed = errors.New(
	"GetOrderFeedQuery must be created via NewGetOrderFeedQuery constructor",
)

// GetOrderFeedQuery reads the courier's dashboard: counters, available orders
// and in-progress orders. Delivered orders are only counted.
type GetOrderFeedQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderFeedQuery() GetOrderFeedQuery {
	return GetOrderFeedQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderFeedQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFeedQueryIsNotConstructed)
}

// StatsResponse are the dashboard counters.
type StatsResponse struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Pending   int `json:"pending"`
	Available int `json:"available"`
}

// GetOrderFeedQueryResponse is the dashboard read model.
type GetOrderFeedQueryResponse struct {
	Stats      StatsResponse   `json:"stats"`
	Available  []OrderResponse `json:"available"`
	InProgress []OrderResponse `json:"in_progress"`
	Selected   *int64          `json:"selected,omitempty"`
	LoadedAt   string          `json:"loaded_at"`
}
