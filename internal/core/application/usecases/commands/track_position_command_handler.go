package commands

import (
	"context"
	"fmt"
	"log/slog"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/ports"
)

// TrackPositionCommandHandler runs one tick while tracking is granted:
// acquire a fix, store it, refresh every open map view, then report the fix
// to the backend and the event bus.
//
// The backend report is fire-and-forget. Its failures, including a 401, are
// logged at debug and never end the session. Missed ticks are not replayed.
type TrackPositionCommandHandler struct {
	sessions  SessionKeeper
	trackers  ports.TrackerStore
	feeds     ports.FeedStore
	source    ports.PositionSource
	reporter  ports.LocationReporter
	publisher ports.EventPublisher
	maps      MapRefresher
	logger    *slog.Logger
}

func NewTrackPositionCommandHandler(
	sessions SessionKeeper,
	trackers ports.TrackerStore,
	feeds ports.FeedStore,
	source ports.PositionSource,
	reporter ports.LocationReporter,
	publisher ports.EventPublisher,
	maps MapRefresher,
	logger *slog.Logger,
) TrackPositionCommandHandler {
	return TrackPositionCommandHandler{
		sessions:  sessions,
		trackers:  trackers,
		feeds:     feeds,
		source:    source,
		reporter:  reporter,
		publisher: publisher,
		maps:      maps,
		logger:    logger.With("component", "TrackPositionCommandHandler"),
	}
}

func (h TrackPositionCommandHandler) Handle(ctx context.Context, command TrackPositionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, me, err := h.sessions.Courier(ctx)
	if err != nil {
		return err
	}

	if !h.trackers.Get().ShouldTrack() {
		return nil
	}

	p, err := h.source.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire position: %w", err)
	}

	if err = h.trackers.Update(func(t *courier.Tracker) error {
		return t.Record(p)
	}); err != nil {
		return err
	}

	h.maps.RefreshAll(ctx, p.Point(), h.inProgress())

	if err = h.reporter.Report(ctx, s.AccessToken(), p.Point()); err != nil {
		h.logger.Debug("failed to report location", "error", err)
	}
	if err = h.publisher.PublishCourierLocation(ctx, me, p); err != nil {
		h.logger.Debug("failed to publish location", "error", err)
	}

	return nil
}

func (h TrackPositionCommandHandler) inProgress() func(order.ID) bool {
	f, ok := h.feeds.Get()
	return func(id order.ID) bool {
		if !ok {
			return false
		}
		_, err := f.FindInProgress(id)
		return err == nil
	}
}
