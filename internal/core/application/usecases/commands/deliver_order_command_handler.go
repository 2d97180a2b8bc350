package commands

import (
	"context"
	"errors"
	"log/slog"

	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

// DeliverOrderCommandHandler reports a delivery to the backend, moves the
// order out of the in-progress bucket and disposes its map view. Once the
// backend has confirmed, the view is disposed even if a refresh replaced the
// feed meanwhile.
type DeliverOrderCommandHandler struct {
	sessions  SessionKeeper
	gateway   ports.OrderGateway
	feeds     ports.FeedStore
	views     ports.MapViewRegistry
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewDeliverOrderCommandHandler(
	sessions SessionKeeper,
	gateway ports.OrderGateway,
	feeds ports.FeedStore,
	views ports.MapViewRegistry,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		sessions:  sessions,
		gateway:   gateway,
		feeds:     feeds,
		views:     views,
		publisher: publisher,
		logger:    logger.With("component", "DeliverOrderCommandHandler"),
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, command DeliverOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, me, err := h.sessions.Courier(ctx)
	if err != nil {
		return err
	}

	current, ok := h.feeds.Get()
	if !ok {
		return errs.NewObjectNotFoundError("in-progress order", command.OrderID())
	}
	inProgress, err := current.FindInProgress(command.OrderID())
	if err != nil {
		return err
	}
	if err = inProgress.ValidateDeliver(me); err != nil {
		return err
	}

	if _, err = h.gateway.Deliver(ctx, s.AccessToken(), command.OrderID(), me); err != nil {
		return h.sessions.BackendFailed(ctx, err)
	}

	var delivered *order.Order
	err = h.feeds.Update(func(f *feed.Feed) error {
		o, deliverErr := f.MarkDelivered(command.OrderID())
		delivered = o.Clone()
		return deliverErr
	})
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// A refresh replaced the feed after the backend confirmed the delivery.
		h.logger.Debug("delivered order no longer listed as in progress", "order_id", command.OrderID())
		delivered = inProgress.Clone()
		if err = delivered.Deliver(me); err != nil {
			return err
		}
	case err != nil:
		return err
	}

	h.views.Close(command.OrderID())

	if err = h.publisher.PublishOrderChanged(ctx, me, delivered); err != nil {
		h.logger.Warn("failed to publish order change", "order_id", command.OrderID(), "error", err)
	}
	return nil
}
