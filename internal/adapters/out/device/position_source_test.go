package device_test

import (
	"context"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/device"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(t *testing.T, capturedAt time.Time) courier.Position {
	t.Helper()
	pt, err := kernel.NewGeoPoint(9.0, -82.4)
	require.NoError(t, err)
	p, err := courier.NewPosition(pt, 5, capturedAt)
	require.NoError(t, err)
	return p
}

func TestPositionSource_Acquire_FreshFix(t *testing.T) {
	s := device.NewPositionSource(time.Minute, time.Second)
	p := position(t, time.Now())
	require.NoError(t, s.Push(p))

	got, err := s.Acquire(t.Context())

	require.NoError(t, err)
	assert.Equal(t, p.CapturedAt(), got.CapturedAt())
}

func TestPositionSource_Acquire_WaitsForPush(t *testing.T) {
	s := device.NewPositionSource(time.Minute, 2*time.Second)
	p := position(t, time.Now())

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = s.Push(p)
	}()

	got, err := s.Acquire(t.Context())

	require.NoError(t, err)
	assert.Equal(t, p.CapturedAt(), got.CapturedAt())
}

func TestPositionSource_Acquire_StaleFixTimesOut(t *testing.T) {
	s := device.NewPositionSource(time.Second, 30*time.Millisecond)
	require.NoError(t, s.Push(position(t, time.Now().Add(-time.Minute))))

	_, err := s.Acquire(t.Context())

	assert.ErrorIs(t, err, courier.ErrPositionTimeout)
}

func TestPositionSource_DeviceError(t *testing.T) {
	s := device.NewPositionSource(time.Minute, time.Second)
	s.SetDeviceError(courier.ErrPermissionDenied)

	_, err := s.Acquire(t.Context())
	assert.ErrorIs(t, err, courier.ErrPermissionDenied)

	require.NoError(t, s.Push(position(t, time.Now())))
	_, err = s.Acquire(t.Context())
	assert.NoError(t, err, "a pushed fix clears the device error")
}

func TestPositionSource_DeviceErrorWakesWaiter(t *testing.T) {
	s := device.NewPositionSource(time.Minute, 2*time.Second)

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.SetDeviceError(courier.ErrPositionUnavailable)
	}()

	_, err := s.Acquire(t.Context())

	assert.ErrorIs(t, err, courier.ErrPositionUnavailable)
}

func TestPositionSource_ContextCancelled(t *testing.T) {
	s := device.NewPositionSource(time.Minute, time.Minute)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.Acquire(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPositionSource_PushKeepsNewest(t *testing.T) {
	s := device.NewPositionSource(time.Hour, time.Second)
	newer := position(t, time.Now())
	require.NoError(t, s.Push(newer))
	require.NoError(t, s.Push(position(t, time.Now().Add(-time.Minute))))

	got, err := s.Acquire(t.Context())

	require.NoError(t, err)
	assert.Equal(t, newer.CapturedAt(), got.CapturedAt())
}

func TestPositionSource_PushInvalid(t *testing.T) {
	s := device.NewPositionSource(time.Minute, time.Second)

	assert.ErrorIs(t, s.Push(courier.Position{}), courier.ErrPositionIsNotConstructed)
}
