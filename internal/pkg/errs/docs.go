// Package errs holds the typed errors shared by the courier tracker.
//
// Every type wraps a sentinel so callers match with errors.Is and read the
// details with errors.As:
//
//	ObjectNotFoundError     -> ErrObjectNotFound      (HTTP 404)
//	ValueIsInvalidError     -> ErrValueIsInvalid      (HTTP 400)
//	ValueIsRequiredError    -> ErrValueIsRequired     (HTTP 400)
//	ValueIsOutOfRangeError  -> ErrValueIsOutOfRange   (HTTP 400)
//	UpstreamError           -> ErrUpstreamFailed      (HTTP 502)
//
// UpstreamError carries the remote service name and status code. The shared
// HTTP client retries it only when IsTransient reports true.
package errs
