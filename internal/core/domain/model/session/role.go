package session

import (
	"fmt"
	"net/url"

	"courier-tracker/internal/pkg/errs"
)

// Role is the account kind the backend assigns at login.
type Role string

const (
	RoleCustomer Role = "usuarionormal"
	RoleCourier  Role = "repartidor"
	RoleCompany  Role = "empresa"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts the backend role names.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleCourier, RoleCompany, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

func (r Role) String() string { return string(r) }

// DefaultRoute is where a user of role r lands after login or after being
// refused a page. companies are the company names linked to the account, in
// backend order.
func (r Role) DefaultRoute(companies []string) string {
	switch r {
	case RoleCourier:
		return "/homeRepartidor"
	case RoleCompany:
		if len(companies) > 0 && companies[0] != "" {
			return "/" + url.PathEscape(companies[0]) + "/home"
		}
		return "/"
	default:
		return "/"
	}
}
