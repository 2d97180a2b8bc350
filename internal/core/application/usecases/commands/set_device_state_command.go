package commands

import (
	"errors"
	"fmt"

	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

var ErrSetDeviceStateCommandIsNotConstructed = errors.New(
	"SetDeviceStateCommand must be created via NewSetDeviceStateCommand constructor",
)

// Device geolocation states reported by the device.
const (
	DeviceStateGranted     = "granted"
	DeviceStateDenied      = "denied"
	DeviceStateUnavailable = "unavailable"
)

// SetDeviceStateCommand records the device's geolocation permission state.
type SetDeviceStateCommand struct {
	deviceErr error

	guard guard.ConstructorGuard
}

func NewSetDeviceStateCommand(state string) (SetDeviceStateCommand, error) {
	cmd := SetDeviceStateCommand{guard: guard.NewConstructorGuard()}
	switch state {
	case DeviceStateGranted:
	case DeviceStateDenied:
		cmd.deviceErr = courier.ErrPermissionDenied
	case DeviceStateUnavailable:
		cmd.deviceErr = courier.ErrPositionUnavailable
	default:
		return SetDeviceStateCommand{}, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a device state", state))
	}
	return cmd, nil
}

func (c SetDeviceStateCommand) Validate() error {
	return c.guard.Validate(ErrSetDeviceStateCommandIsNotConstructed)
}

// DeviceError is nil when the device grants access.
func (c SetDeviceStateCommand) DeviceError() error { return c.deviceErr }
