// Package courier models the courier device's geolocation: individual fixes
// (Position), the permission state machine and the Tracker state that the
// periodic tracking tick updates.
package courier
