package kafka

import (
	"context"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
)

var _ ports.EventPublisher = NopPublisher{}

// NopPublisher drops every event. It stands in when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderChanged(context.Context, order.CourierID, *order.Order) error {
	return nil
}

func (NopPublisher) PublishCourierLocation(context.Context, order.CourierID, courier.Position) error {
	return nil
}
