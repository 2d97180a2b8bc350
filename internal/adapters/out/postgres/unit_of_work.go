// Package postgres provides the GORM-based Unit of Work over the session store.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, "default")
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.SessionRepository().Save(ctx, s); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction. Goroutines must use
// separate instances.
package postgres

import (
	"context"

	"courier-tracker/internal/adapters/out/postgres/sessionrepo"
	"courier-tracker/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one session slot.
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	slot string
}

// NewGormUnitOfWorkFactory creates a factory for the device identified by slot.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, cfg.SessionSlot)
func NewGormUnitOfWorkFactory(db *gorm.DB, slot string) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, slot: slot}
}

// Create produces a new UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, slot: f.slot}
}

// GormUnitOfWork coordinates one database transaction. Repositories obtained
// before Begin use the connection pool directly.
type GormUnitOfWork struct {
	db   *gorm.DB
	tx   *gorm.DB
	slot string
}

// Begin starts a transaction. Calling Begin again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the active transaction.
// Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction.
// Returns gorm.ErrInvalidTransaction when none is active, so a deferred
// Rollback after Commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// SessionRepository returns a repository bound to the active transaction, or
// to the pool when none is active.
func (uow *GormUnitOfWork) SessionRepository() ports.SessionRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return sessionrepo.NewGormSessionRepository(db, uow.slot)
}
