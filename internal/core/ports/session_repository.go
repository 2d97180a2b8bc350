// Package ports declares the contracts between the courier tracker core and
// its adapters: the backend API, the map services, the device, the local
// stores and the event bus.
package ports

import (
	"context"

	"courier-tracker/internal/core/domain/model/session"
)

// SessionRepository persists the single session of this device.
type SessionRepository interface {
	// Get returns the stored session or errs.ErrObjectNotFound when nobody is
	// logged in.
	Get(ctx context.Context) (session.Session, error)

	// Save stores s, replacing any previous session.
	Save(ctx context.Context, s session.Session) error

	// Delete removes the stored session. Deleting when none exists is not an error.
	Delete(ctx context.Context) error
}
