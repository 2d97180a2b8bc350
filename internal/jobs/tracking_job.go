package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// Tick results recorded by the tracking job.
const (
	TickInitialized = "initialized"
	TickTracked     = "tracked"
	TickSkipped     = "skipped"
	TickFailed      = "failed"
)

type InitializeTrackingHandler interface {
	Handle(ctx context.Context, command commands.InitializeTrackingCommand) error
}

type TrackPositionHandler interface {
	Handle(ctx context.Context, command commands.TrackPositionCommand) error
}

// TrackingJob drives the geolocation tracker. A pending tracker gets its
// initial acquisition, a granted one gets a tracking tick. A tick that is
// still running when the next one is due makes the next one skip.
type TrackingJob struct {
	initialize InitializeTrackingHandler
	track      TrackPositionHandler
	trackers   ports.TrackerStore
	interval   time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewTrackingJob(
	initialize InitializeTrackingHandler,
	track TrackPositionHandler,
	trackers ports.TrackerStore,
	interval time.Duration,
	logger *slog.Logger,
) *TrackingJob {
	return &TrackingJob{
		initialize: initialize,
		track:      track,
		trackers:   trackers,
		interval:   interval,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.With("component", "tracking_job"),
	}
}

// Start schedules the tick every interval.
func (j *TrackingJob) Start() error {
	if j.interval < time.Second {
		return fmt.Errorf("tracking interval %s is shorter than one second", j.interval)
	}

	if _, err := j.cron.AddFunc("@every "+j.interval.String(), func() {
		j.Tick(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking job started", "interval", j.interval.String())
	return nil
}

// Tick runs one step and returns what it did. Failures are logged and
// dropped; the next tick starts from scratch.
func (j *TrackingJob) Tick(ctx context.Context) string {
	result := j.tick(ctx)
	metrics.ObserveTrackingTick(result)
	return result
}

func (j *TrackingJob) tick(ctx context.Context) string {
	var (
		err    error
		result string
	)

	switch j.trackers.Get().Permission() {
	case courier.PermissionPending:
		err = j.initialize.Handle(ctx, commands.NewInitializeTrackingCommand(false))
		result = TickInitialized
	case courier.PermissionGranted:
		err = j.track.Handle(ctx, commands.NewTrackPositionCommand())
		result = TickTracked
	default:
		return TickSkipped
	}

	switch {
	case err == nil:
		return result
	case errors.Is(err, session.ErrUnauthenticated), errors.Is(err, session.ErrForbidden):
		return TickSkipped
	default:
		j.logger.DebugContext(ctx, "Tracking tick failed", "error", err)
		return TickFailed
	}
}

// Stop waits for a running tick to finish.
func (j *TrackingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking job stopped")
}
