package ports

import (
	"context"

	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
)

// Every backend call returns an error matching session.ErrUnauthenticated when
// the backend answers 401, so callers can tear the session down.

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
}

// OrderGateway reads and updates orders in the backend.
type OrderGateway interface {
	// List returns every order visible to the token holder.
	List(ctx context.Context, accessToken string) ([]*order.Order, error)

	// Accept assigns courierID to the order and moves it en route.
	Accept(ctx context.Context, accessToken string, id order.ID, courierID order.CourierID) (*order.Order, error)

	// Deliver marks the order delivered by courierID.
	Deliver(ctx context.Context, accessToken string, id order.ID, courierID order.CourierID) (*order.Order, error)
}

// LocationReporter sends the courier position to the backend.
type LocationReporter interface {
	Report(ctx context.Context, accessToken string, at kernel.GeoPoint) error
}
