package services

import (
	"fmt"
	"slices"
	"time"

	"courier-tracker/internal/core/domain/model/session"
)

// Rule grants a set of roles access to one operation. A rule with Public set
// needs no session; a rule with no roles admits any authenticated session.
type Rule struct {
	Method string
	Path   string
	Public bool
	Roles  []session.Role
}

// Decision is the outcome of an authorization check. Redirect is set when the
// caller should be sent elsewhere: the login page when unauthenticated, the
// role's landing page when forbidden.
type Decision struct {
	Err      error
	Redirect string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.Err == nil }

// LoginRoute is where unauthenticated callers are sent.
const LoginRoute = "/login"

// AccessPolicy is the single table that says which roles may use which
// operation. It is evaluated once per request.
//
// Business rules:
//   - Operations missing from the table are denied
//   - Public operations never look at the session
//   - An expired session counts as no session
//   - A denied role is pointed at its default route
type AccessPolicy struct {
	rules map[string]Rule
}

// NewAccessPolicy builds a policy from rules. Later rules for the same method
// and path replace earlier ones.
func NewAccessPolicy(rules ...Rule) AccessPolicy {
	p := AccessPolicy{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		p.rules[key(r.Method, r.Path)] = r
	}
	return p
}

// Authorize decides whether s may call method on the route pattern path.
//
// Parameters:
//   - method: HTTP method
//   - path: the registered route pattern, e.g. "/api/v1/orders/:id/accept"
//   - s: the current session, nil when nobody is logged in
//   - now: used to check token expiry
//
// Returns:
//   - Decision: Err is nil, session.ErrUnauthenticated or session.ErrForbidden
func (p AccessPolicy) Authorize(method, path string, s *session.Session, now time.Time) Decision {
	rule, ok := p.rules[key(method, path)]
	if !ok {
		if s == nil {
			return Decision{Err: session.ErrUnauthenticated, Redirect: LoginRoute}
		}
		return Decision{Err: fmt.Errorf("%w: %s %s is not in the access table", session.ErrForbidden, method, path), Redirect: s.DefaultRoute()}
	}

	if rule.Public {
		return Decision{}
	}

	if s == nil || s.Validate() != nil || s.IsExpired(now) {
		return Decision{Err: session.ErrUnauthenticated, Redirect: LoginRoute}
	}

	if len(rule.Roles) > 0 && !slices.Contains(rule.Roles, s.Role()) {
		return Decision{
			Err:      fmt.Errorf("%w: %s may not call %s %s", session.ErrForbidden, s.Role(), method, path),
			Redirect: s.DefaultRoute(),
		}
	}

	return Decision{}
}

func key(method, path string) string {
	return method + " " + path
}
