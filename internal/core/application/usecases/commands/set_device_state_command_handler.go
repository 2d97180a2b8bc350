package commands

import (
	"context"

	"courier-tracker/internal/core/ports"
)

type SetDeviceStateCommandHandler struct {
	source ports.PositionSource
}

func NewSetDeviceStateCommandHandler(source ports.PositionSource) SetDeviceStateCommandHandler {
	return SetDeviceStateCommandHandler{source: source}
}

func (h SetDeviceStateCommandHandler) Handle(_ context.Context, command SetDeviceStateCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	h.source.SetDeviceError(command.DeviceError())
	return nil
}
