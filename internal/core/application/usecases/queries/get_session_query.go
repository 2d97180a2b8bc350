package queries

import (
	"errors"
	"time"

	"courier-tracker/internal/pkg/guard"
)

var ErrGetSessionQueryIsNotConstructed = errors.New(
	"GetSessionQuery must be created via NewGetSessionQuery constructor",
)

// GetSessionQuery reads the logged-in user's profile. Tokens are never part
// of the read model.
type GetSessionQuery struct {
	guard guard.ConstructorGuard
}

func NewGetSessionQuery() GetSessionQuery {
	return GetSessionQuery{guard: guard.NewConstructorGuard()}
}

func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// GetSessionQueryResponse is the profile shown after login, with the route
// the UI should land on.
type GetSessionQueryResponse struct {
	UserID       int64      `json:"user_id"`
	CourierID    *int64     `json:"courier_id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	Companies    []string   `json:"companies,omitempty"`
	DefaultRoute string     `json:"default_route"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}
