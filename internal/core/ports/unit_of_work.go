package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command so concurrent
// handlers never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps the session store in a transaction. Login and logout
// begin it explicitly; reads may use the repository without one.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit and Rollback fail when no transaction is active.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// SessionRepository is bound to the active transaction, if any.
	SessionRepository() SessionRepository
}
