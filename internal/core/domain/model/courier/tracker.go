package courier

import (
	"fmt"

	"courier-tracker/internal/pkg/errs"
)

// Tracker is the geolocation state of the courier session: the permission
// state, the latest fix and the dismissible denial banner.
type Tracker struct {
	permission      Permission
	latest          *Position
	banner          string
	bannerDismissed bool
}

// NewTracker returns a tracker awaiting its first acquisition.
func NewTracker() Tracker {
	return Tracker{permission: PermissionPending}
}

func (t Tracker) Permission() Permission { return t.permission }

// Latest returns the newest fix, if any.
func (t Tracker) Latest() (Position, bool) {
	if t.latest == nil {
		return Position{}, false
	}
	return *t.latest, true
}

// Banner returns the denial banner text, empty when hidden.
func (t Tracker) Banner() string {
	if t.bannerDismissed {
		return ""
	}
	return t.banner
}

// Grant records the initial successful acquisition.
func (t *Tracker) Grant(p Position) error {
	if err := t.Record(p); err != nil {
		return err
	}
	t.permission = PermissionGranted
	t.banner = ""
	t.bannerDismissed = false
	return nil
}

// Deny records a failed initial acquisition and raises the banner.
func (t *Tracker) Deny(cause error) {
	t.permission = PermissionDenied
	t.banner = BannerMessage(cause)
	t.bannerDismissed = false
}

// Record overwrites the latest fix.
func (t *Tracker) Record(p Position) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.latest = &p
	return nil
}

// DismissBanner hides the banner without changing the permission.
func (t *Tracker) DismissBanner() {
	t.bannerDismissed = true
}

// Retry returns a denied tracker to Pending so the initial acquisition runs again.
func (t *Tracker) Retry() error {
	if t.permission == PermissionGranted {
		return errs.NewValueIsInvalidErrorWithCause("permission", fmt.Errorf("%s cannot be retried", t.permission))
	}
	t.permission = PermissionPending
	t.banner = ""
	t.bannerDismissed = false
	return nil
}

// ShouldTrack reports whether periodic ticks may run.
func (t Tracker) ShouldTrack() bool {
	return t.permission == PermissionGranted
}
