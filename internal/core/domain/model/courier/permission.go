package courier

import (
	"errors"
	"fmt"

	"courier-tracker/internal/pkg/errs"
)

// Failure kinds reported by a position source.
var (
	ErrPermissionDenied    = errors.New("location permission denied by the user")
	ErrPositionUnavailable = errors.New("location information unavailable")
	ErrPositionTimeout     = errors.New("timed out while acquiring location")
)

// Permission is the geolocation permission state as seen by the tracker.
//
//	Pending ──acquire ok──> Granted
//	   │                      │
//	   └──acquire failed──> Denied ──retry──> Pending
type Permission int

const (
	PermissionUnknown Permission = iota
	PermissionPending
	PermissionGranted
	PermissionDenied
)

func getPermissionStrings() map[Permission]string {
	return map[Permission]string{
		PermissionUnknown: "unknown",
		PermissionPending: "pending",
		PermissionGranted: "granted",
		PermissionDenied:  "denied",
	}
}

func (p Permission) String() string {
	if s, ok := getPermissionStrings()[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePermission decodes the textual state sent by the device.
func ParsePermission(s string) (Permission, error) {
	for p, str := range getPermissionStrings() {
		if p != PermissionUnknown && str == s {
			return p, nil
		}
	}
	return PermissionUnknown, errs.NewValueIsInvalidErrorWithCause("permission", fmt.Errorf("%q is not a permission state", s))
}

// BannerMessage returns the user-facing text for an acquisition failure.
func BannerMessage(err error) string {
	const suffix = ". Some features may be unavailable."
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return ErrPermissionDenied.Error() + suffix
	case errors.Is(err, ErrPositionUnavailable):
		return ErrPositionUnavailable.Error() + suffix
	case errors.Is(err, ErrPositionTimeout):
		return ErrPositionTimeout.Error() + suffix
	default:
		return "unknown error while acquiring location" + suffix
	}
}
