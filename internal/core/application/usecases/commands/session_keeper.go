package commands

import (
	"context"
	"errors"
	"log/slog"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

// SessionKeeper loads the device session for command handlers and tears it
// down when the backend rejects the token.
//
// Teardown deletes the stored session, disposes every map view, clears the
// order feed and resets the tracker.
type SessionKeeper struct {
	uowFactory SessionUoWFactory
	feeds      ports.FeedStore
	trackers   ports.TrackerStore
	views      ports.MapViewRegistry
	logger     *slog.Logger
}

// NewSessionKeeper creates a keeper over the session store and the state it
// owns.
func NewSessionKeeper(
	uowFactory SessionUoWFactory,
	feeds ports.FeedStore,
	trackers ports.TrackerStore,
	views ports.MapViewRegistry,
	logger *slog.Logger,
) SessionKeeper {
	return SessionKeeper{
		uowFactory: uowFactory,
		feeds:      feeds,
		trackers:   trackers,
		views:      views,
		logger:     logger.With("component", "SessionKeeper"),
	}
}

// Current returns the stored session, or session.ErrUnauthenticated when
// there is none.
func (k SessionKeeper) Current(ctx context.Context) (session.Session, error) {
	s, err := k.uowFactory.Create().SessionRepository().Get(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return session.Session{}, session.ErrUnauthenticated
	}
	if err != nil {
		return session.Session{}, err
	}
	return s, nil
}

// Courier returns the stored session and its courier id. Sessions of other
// roles get session.ErrNotCourier.
func (k SessionKeeper) Courier(ctx context.Context) (session.Session, order.CourierID, error) {
	s, err := k.Current(ctx)
	if err != nil {
		return session.Session{}, 0, err
	}
	id, err := s.CourierID()
	if err != nil {
		return session.Session{}, 0, err
	}
	return s, id, nil
}

// Teardown logs the device out.
func (k SessionKeeper) Teardown(ctx context.Context) error {
	k.views.CloseAll()
	k.feeds.Clear()
	k.trackers.Reset()

	uow := k.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SessionRepository().Delete(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// BackendFailed returns err unchanged after tearing the session down when err
// says the backend rejected the token.
func (k SessionKeeper) BackendFailed(ctx context.Context, err error) error {
	if !errors.Is(err, session.ErrUnauthenticated) {
		return err
	}

	k.logger.Info("backend rejected the session, logging out", "error", err)
	if tdErr := k.Teardown(ctx); tdErr != nil {
		return errors.Join(err, tdErr)
	}
	return err
}
