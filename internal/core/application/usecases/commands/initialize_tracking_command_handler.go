package commands

import (
	"context"
	"log/slog"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/ports"
)

// InitializeTrackingCommandHandler moves a pending tracker to granted or
// denied. A denial is a state, not an error: the handler records the banner
// and returns nil.
type InitializeTrackingCommandHandler struct {
	sessions SessionKeeper
	trackers ports.TrackerStore
	source   ports.PositionSource
	logger   *slog.Logger
}

func NewInitializeTrackingCommandHandler(
	sessions SessionKeeper,
	trackers ports.TrackerStore,
	source ports.PositionSource,
	logger *slog.Logger,
) InitializeTrackingCommandHandler {
	return InitializeTrackingCommandHandler{
		sessions: sessions,
		trackers: trackers,
		source:   source,
		logger:   logger.With("component", "InitializeTrackingCommandHandler"),
	}
}

func (h InitializeTrackingCommandHandler) Handle(ctx context.Context, command InitializeTrackingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if _, _, err := h.sessions.Courier(ctx); err != nil {
		return err
	}

	if command.Retry() {
		if err := h.trackers.Update(func(t *courier.Tracker) error {
			return t.Retry()
		}); err != nil {
			return err
		}
	}

	if h.trackers.Get().Permission() != courier.PermissionPending {
		return nil
	}

	p, err := h.source.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.logger.Info("initial position acquisition failed", "error", err)
		return h.trackers.Update(func(t *courier.Tracker) error {
			t.Deny(err)
			return nil
		})
	}

	h.logger.Info("location tracking granted")
	return h.trackers.Update(func(t *courier.Tracker) error {
		return t.Grant(p)
	})
}
