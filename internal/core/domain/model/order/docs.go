// Package order models the backend orders a courier sees: status decoding and
// the accept/deliver transitions the courier may request.
package order
