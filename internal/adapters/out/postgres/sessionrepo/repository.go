package sessionrepo

import (
	"context"
	"errors"

	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db   *gorm.DB
	slot string
}

// NewGormSessionRepository creates a repository bound to the row of slot.
func NewGormSessionRepository(db *gorm.DB, slot string) *GormSessionRepository {
	return &GormSessionRepository{
		db:   db,
		slot: slot,
	}
}

// Get retrieves the session of the slot.
func (r *GormSessionRepository) Get(ctx context.Context) (session.Session, error) {
	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "slot = ?", r.slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Session{}, errs.NewObjectNotFoundError("session", r.slot)
		}
		return session.Session{}, err
	}

	return toDomain(dto)
}

// Save inserts or replaces the session of the slot.
func (r *GormSessionRepository) Save(ctx context.Context, s session.Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(r.slot, s)
	return r.db.WithContext(ctx).Save(&dto).Error
}

// Delete removes the session of the slot, if any.
func (r *GormSessionRepository) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&SessionDTO{}, "slot = ?", r.slot).Error
}
