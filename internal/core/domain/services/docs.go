// Package services provides domain services that make decisions spanning more
// than one aggregate of the courier tracker.
//
// The package includes:
//   - RouteSelector: chooses between a driving route and the straight-line fallback
//   - AccessPolicy: the declarative table of which roles may call which operation
package services
