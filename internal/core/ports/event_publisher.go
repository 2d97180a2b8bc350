package ports

import (
	"context"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/order"
)

// EventPublisher announces state changes to other services. Publishing is best
// effort; callers log failures and go on.
type EventPublisher interface {
	PublishOrderChanged(ctx context.Context, courierID order.CourierID, o *order.Order) error
	PublishCourierLocation(ctx context.Context, courierID order.CourierID, p courier.Position) error
}
