package commands

import (
	"errors"
	"time"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/pkg/guard"
)

var ErrRecordPositionCommandIsNotConstructed = errors.New(
	"RecordPositionCommand must be created via NewRecordPositionCommand constructor",
)

// RecordPositionCommand carries a fix pushed by the device. A zero capturedAt
// means the fix was taken now.
type RecordPositionCommand struct {
	position courier.Position

	guard guard.ConstructorGuard
}

func NewRecordPositionCommand(lat, lng, accuracy float64, capturedAt time.Time) (RecordPositionCommand, error) {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return RecordPositionCommand{}, err
	}
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}
	p, err := courier.NewPosition(point, accuracy, capturedAt)
	if err != nil {
		return RecordPositionCommand{}, err
	}
	return RecordPositionCommand{position: p, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordPositionCommand) Validate() error {
	return c.guard.Validate(ErrRecordPositionCommandIsNotConstructed)
}

func (c RecordPositionCommand) Position() courier.Position { return c.position }
