package commands

import (
	"context"

	"courier-tracker/internal/core/ports"
)

// RecordPositionCommandHandler hands a device fix to the position source.
// A pushed fix also clears any error the device reported earlier.
type RecordPositionCommandHandler struct {
	source ports.PositionSource
}

func NewRecordPositionCommandHandler(source ports.PositionSource) RecordPositionCommandHandler {
	return RecordPositionCommandHandler{source: source}
}

func (h RecordPositionCommandHandler) Handle(_ context.Context, command RecordPositionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	return h.source.Push(command.Position())
}
