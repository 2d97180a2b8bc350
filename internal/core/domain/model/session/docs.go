// Package session holds the authenticated user of the device and the role
// rules that decide where each role lands.
package session
