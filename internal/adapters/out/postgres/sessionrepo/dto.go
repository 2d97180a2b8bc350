// Package sessionrepo persists the device session with GORM. One row per
// device slot; saving replaces the row.
package sessionrepo

import (
	"time"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
)

// SessionDTO is the database shape of a session.
type SessionDTO struct {
	Slot         string `gorm:"primaryKey;size:64"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string
	UserID       int64 `gorm:"not null"`
	CourierID    *int64
	Name         string
	Email        string
	Phone        string
	Role         string   `gorm:"size:32;not null"`
	Companies    []string `gorm:"serializer:json"`
	ExpiresAt    *time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default naming convention.
func (SessionDTO) TableName() string {
	return "sessions"
}

func fromDomain(slot string, s session.Session) SessionDTO {
	u := s.User()

	dto := SessionDTO{
		Slot:         slot,
		AccessToken:  s.AccessToken(),
		RefreshToken: s.RefreshToken(),
		UserID:       u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role.String(),
		Companies:    u.Companies,
	}
	if u.CourierID != nil {
		id := int64(*u.CourierID)
		dto.CourierID = &id
	}
	if exp := s.ExpiresAt(); !exp.IsZero() {
		t := exp.UTC()
		dto.ExpiresAt = &t
	}
	return dto
}

func toDomain(dto SessionDTO) (session.Session, error) {
	u := session.User{
		ID:        dto.UserID,
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Role:      session.Role(dto.Role),
		Companies: dto.Companies,
	}
	if dto.CourierID != nil {
		id := order.CourierID(*dto.CourierID)
		u.CourierID = &id
	}

	var expiresAt time.Time
	if dto.ExpiresAt != nil {
		expiresAt = *dto.ExpiresAt
	}

	return session.NewSession(dto.AccessToken, dto.RefreshToken, u, expiresAt)
}
