package ports

import (
	"context"

	"courier-tracker/internal/core/domain/model/courier"
)

// PositionSource is the device's geolocation. The device pushes fixes and its
// permission state; the tracker pulls through Acquire.
type PositionSource interface {
	// Acquire returns a recent fix or one of courier.ErrPermissionDenied,
	// courier.ErrPositionUnavailable or courier.ErrPositionTimeout.
	Acquire(ctx context.Context) (courier.Position, error)

	// Push records a fix reported by the device.
	Push(p courier.Position) error

	// SetDeviceError records why the device cannot deliver fixes. nil clears it.
	SetDeviceError(err error)
}
