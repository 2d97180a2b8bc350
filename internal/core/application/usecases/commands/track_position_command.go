package commands

import (
	"errors"

	"courier-tracker/internal/pkg/guard"
)

var ErrTrackPositionCommandIsNotConstructed = errors.New(
	"TrackPositionCommand must be created via NewTrackPositionCommand constructor",
)

// TrackPositionCommand is one tracking tick.
type TrackPositionCommand struct {
	guard guard.ConstructorGuard
}

func NewTrackPositionCommand() TrackPositionCommand {
	return TrackPositionCommand{guard: guard.NewConstructorGuard()}
}

func (c TrackPositionCommand) Validate() error {
	return c.guard.Validate(ErrTrackPositionCommandIsNotConstructed)
}
