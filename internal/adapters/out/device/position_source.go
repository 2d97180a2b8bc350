// Package device adapts the fixes and permission state pushed by the courier's
// device into a pull-style position source.
package device

import (
	"context"
	"sync"
	"time"

	"courier-tracker/internal/core/domain/model/courier"
)

// PositionSource answers Acquire with the newest pushed fix no older than
// maxAge, waiting up to timeout for one to arrive.
type PositionSource struct {
	maxAge  time.Duration
	timeout time.Duration

	mu        sync.Mutex
	latest    *courier.Position
	deviceErr error
	changed   chan struct{}
}

func NewPositionSource(maxAge, timeout time.Duration) *PositionSource {
	return &PositionSource{
		maxAge:  maxAge,
		timeout: timeout,
		changed: make(chan struct{}),
	}
}

// Acquire returns a fresh fix, the error the device reported, or
// courier.ErrPositionTimeout.
func (s *PositionSource) Acquire(ctx context.Context) (courier.Position, error) {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	for {
		p, wait, err := s.current()
		if wait == nil {
			return p, err
		}

		select {
		case <-wait:
		case <-timer.C:
			return courier.Position{}, courier.ErrPositionTimeout
		case <-ctx.Done():
			return courier.Position{}, ctx.Err()
		}
	}
}

// Push records a device fix and clears any device error.
func (s *PositionSource) Push(p courier.Position) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil || !p.CapturedAt().Before(s.latest.CapturedAt()) {
		s.latest = &p
	}
	s.deviceErr = nil
	s.broadcast()
	return nil
}

// SetDeviceError makes Acquire fail with err until cleared by nil or a Push.
func (s *PositionSource) SetDeviceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deviceErr = err
	s.broadcast()
}

// current returns a result, or a channel to wait on when there is none yet.
func (s *PositionSource) current() (courier.Position, <-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deviceErr != nil {
		return courier.Position{}, nil, s.deviceErr
	}
	if s.latest != nil && s.latest.IsFresh(time.Now(), s.maxAge) {
		return *s.latest, nil, nil
	}
	return courier.Position{}, s.changed, nil
}

func (s *PositionSource) broadcast() {
	close(s.changed)
	s.changed = make(chan struct{})
}
