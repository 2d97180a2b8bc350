package commands

import (
	"context"

	"courier-tracker/internal/core/ports"
)

// LoginCommandHandler logs the device in and persists the session. State left
// over from a previous user is discarded.
type LoginCommandHandler struct {
	auth       ports.Authenticator
	uowFactory SessionUoWFactory
	feeds      ports.FeedStore
	trackers   ports.TrackerStore
	views      ports.MapViewRegistry
}

func NewLoginCommandHandler(
	auth ports.Authenticator,
	uowFactory SessionUoWFactory,
	feeds ports.FeedStore,
	trackers ports.TrackerStore,
	views ports.MapViewRegistry,
) LoginCommandHandler {
	return LoginCommandHandler{
		auth:       auth,
		uowFactory: uowFactory,
		feeds:      feeds,
		trackers:   trackers,
		views:      views,
	}
}

// Handle authenticates against the backend and stores the session. Nothing is
// stored when authentication fails.
func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, err := h.auth.Login(ctx, command.Email(), command.Password())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Save(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.views.CloseAll()
	h.feeds.Clear()
	h.trackers.Reset()
	return nil
}
