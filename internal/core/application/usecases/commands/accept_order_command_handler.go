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

// AcceptOrderCommandHandler asks the backend to assign an available order to
// the courier and, once confirmed, moves it to the in-progress bucket.
//
// Nothing changes locally when the backend refuses. Once the backend has
// confirmed, the accept succeeds even if a refresh replaced the feed meanwhile. The order.changed event
// is published after the feed is updated; a failed publish is only logged.
type AcceptOrderCommandHandler struct {
	sessions  SessionKeeper
	gateway   ports.OrderGateway
	feeds     ports.FeedStore
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func NewAcceptOrderCommandHandler(
	sessions SessionKeeper,
	gateway ports.OrderGateway,
	feeds ports.FeedStore,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		sessions:  sessions,
		gateway:   gateway,
		feeds:     feeds,
		publisher: publisher,
		logger:    logger.With("component", "AcceptOrderCommandHandler"),
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, me, err := h.sessions.Courier(ctx)
	if err != nil {
		return err
	}

	current, ok := h.feeds.Get()
	if !ok {
		return errs.NewObjectNotFoundError("available order", command.OrderID())
	}
	available, err := current.FindAvailable(command.OrderID())
	if err != nil {
		return err
	}
	if err = available.ValidateAccept(me); err != nil {
		return err
	}

	accepted, err := h.gateway.Accept(ctx, s.AccessToken(), command.OrderID(), me)
	if err != nil {
		return h.sessions.BackendFailed(ctx, err)
	}

	// The backend may answer with a partial order; fall back to applying the
	// transition to the listed copy.
	if accepted == nil || accepted.ID() != command.OrderID() || !accepted.IsAssignedTo(me) {
		accepted = available.Clone()
		if err = accepted.Accept(me); err != nil {
			return err
		}
	}

	err = h.feeds.Update(func(f *feed.Feed) error {
		return f.Accept(accepted)
	})
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		// A refresh replaced the feed after the backend confirmed the accept;
		// the refreshed feed already reflects the backend.
		h.logger.Debug("accepted order no longer listed as available", "order_id", command.OrderID())
	case err != nil:
		return err
	}

	h.publish(ctx, me, accepted)
	return nil
}

func (h AcceptOrderCommandHandler) publish(ctx context.Context, me order.CourierID, o *order.Order) {
	if err := h.publisher.PublishOrderChanged(ctx, me, o); err != nil {
		h.logger.Warn("failed to publish order change", "order_id", o.ID(), "error", err)
	}
}
