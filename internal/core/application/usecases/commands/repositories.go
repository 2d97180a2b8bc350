// Package commands contains the operations that change the tracker's state:
// the session, the order feed, the map views and the geolocation tracker.
// Every command follows the same shape: a constructor that validates input,
// and a handler whose Handle method performs the operation.
package commands

import (
	"context"

	"courier-tracker/internal/core/ports"
)

// Unit of Work interfaces give command handlers transactional access to the
// session store.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// SessionUoW manages transactions for session changes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.SessionRepository().Save(ctx, s)
	//   err = uow.Commit(ctx)
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}
)
