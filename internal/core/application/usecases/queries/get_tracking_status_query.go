package queries

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrGetTrackingStatusQueryIsNotConstructed = errors.New(
	"GetTrackingStatusQuery must be created via NewGetTrackingStatusQuery constructor",
)

// GetTrackingStatusQuery reads the permission state, the banner and the
// latest fix.
type GetTrackingStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTrackingStatusQuery() GetTrackingStatusQuery {
	return GetTrackingStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTrackingStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingStatusQueryIsNotConstructed)
}

type GetTrackingStatusQueryResponse struct {
	Permission string            `json:"permission"`
	Banner     string            `json:"banner,omitempty"`
	Latest     *PositionResponse `json:"latest,omitempty"`
}
