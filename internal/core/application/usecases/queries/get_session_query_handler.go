package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"courier-tracker/internal/core/domain/model/session"

	"gorm.io/gorm"
)

// GetSessionQueryHandler reads the session row of this device straight from
// the database. It returns session.ErrUnauthenticated when nobody is logged in.
type GetSessionQueryHandler struct {
	db   *gorm.DB
	slot string
}

// NewGetSessionQueryHandler creates a handler reading the row stored under slot.
func NewGetSessionQueryHandler(db *gorm.DB, slot string) GetSessionQueryHandler {
	return GetSessionQueryHandler{db: db, slot: slot}
}

func (h GetSessionQueryHandler) Handle(ctx context.Context, query GetSessionQuery) (GetSessionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionQueryResponse{}, err
	}

	var (
		r         GetSessionQueryResponse
		courierID sql.NullInt64
		phone     sql.NullString
		companies sql.NullString
		expiresAt sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			user_id,
			courier_id,
			name,
			email,
			phone,
			role,
			companies,
			expires_at
		FROM sessions
		WHERE slot = ?
	`, h.slot).Row()

	err := row.Scan(&r.UserID, &courierID, &r.Name, &r.Email, &phone, &r.Role, &companies, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetSessionQueryResponse{}, session.ErrUnauthenticated
	}
	if err != nil {
		return GetSessionQueryResponse{}, err
	}

	if courierID.Valid {
		id := courierID.Int64
		r.CourierID = &id
	}
	r.Phone = phone.String
	if companies.Valid && companies.String != "" {
		if err = json.Unmarshal([]byte(companies.String), &r.Companies); err != nil {
			return GetSessionQueryResponse{}, err
		}
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		r.ExpiresAt = &t
		if !time.Now().Before(t) {
			return GetSessionQueryResponse{}, session.ErrUnauthenticated
		}
	}

	role, err := session.ParseRole(r.Role)
	if err != nil {
		return GetSessionQueryResponse{}, err
	}
	r.DefaultRoute = role.DefaultRoute(r.Companies)

	return r, nil
}
