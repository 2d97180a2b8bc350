package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/pkg/errs"
	"courier-tracker/internal/pkg/guard"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not built by NewSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession")

	// ErrUnauthenticated is returned when there is no usable session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the session role may not use an operation.
	ErrForbidden = errors.New("role is not allowed")

	// ErrNotCourier is returned when a non-courier session reaches courier operations.
	ErrNotCourier = fmt.Errorf("%w: session has no courier profile", ErrForbidden)
)

// User is the profile returned with the tokens.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Role      Role
	CourierID *order.CourierID
	Companies []string
}

// Session is the authenticated state of the device: tokens plus the user
// profile. It replaces the loose values a browser keeps in local storage.
type Session struct {
	accessToken  string
	refreshToken string
	user         User
	expiresAt    time.Time

	guard guard.ConstructorGuard
}

// NewSession validates the login result. A zero expiresAt means the token
// carried no expiry.
func NewSession(accessToken, refreshToken string, user User, expiresAt time.Time) (Session, error) {
	s := Session{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setTokens(accessToken, refreshToken),
		s.setUser(user),
	); err != nil {
		return Session{}, err
	}
	s.expiresAt = expiresAt

	return s, nil
}

// Validate ensures the session was built by NewSession.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s Session) AccessToken() string  { return s.accessToken }
func (s Session) RefreshToken() string { return s.refreshToken }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }
func (s Session) Role() Role           { return s.user.Role }

// User returns a copy of the profile.
func (s Session) User() User {
	u := s.user
	u.Companies = slices.Clone(s.user.Companies)
	if s.user.CourierID != nil {
		id := *s.user.CourierID
		u.CourierID = &id
	}
	return u
}

// CourierID returns the courier profile id, required by every courier operation.
func (s Session) CourierID() (order.CourierID, error) {
	if s.user.Role != RoleCourier || s.user.CourierID == nil {
		return 0, ErrNotCourier
	}
	return *s.user.CourierID, nil
}

// IsExpired reports whether the access token expiry has passed.
func (s Session) IsExpired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// DefaultRoute is the landing page for this session's role.
func (s Session) DefaultRoute() string {
	return s.user.Role.DefaultRoute(s.user.Companies)
}

func (s *Session) setTokens(access, refresh string) error {
	if strings.TrimSpace(access) == "" {
		return errs.NewValueIsRequiredError("access token")
	}
	s.accessToken = access
	s.refreshToken = refresh
	return nil
}

func (s *Session) setUser(u User) error {
	role, err := ParseRole(string(u.Role))
	if err != nil {
		return err
	}
	if u.ID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id is invalid", fmt.Errorf("%d is not greater than 0", u.ID))
	}
	if u.CourierID != nil && *u.CourierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courier id is invalid", fmt.Errorf("%d is not greater than 0", *u.CourierID))
	}
	u.Role = role
	s.user = u
	s.user.Companies = slices.Clone(u.Companies)
	if u.CourierID != nil {
		id := *u.CourierID
		s.user.CourierID = &id
	}
	return nil
}
