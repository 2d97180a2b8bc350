package commands

import (
	"context"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/ports"
)

type DismissBannerCommandHandler struct {
	trackers ports.TrackerStore
}

func NewDismissBannerCommandHandler(trackers ports.TrackerStore) DismissBannerCommandHandler {
	return DismissBannerCommandHandler{trackers: trackers}
}

func (h DismissBannerCommandHandler) Handle(_ context.Context, command DismissBannerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.trackers.Update(func(t *courier.Tracker) error {
		t.DismissBanner()
		return nil
	})
}
