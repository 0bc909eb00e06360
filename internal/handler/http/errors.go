package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when a notify call arrives
	// without an Authorization header.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrMalformedBody is returned when a notify request body is not
	// valid JSON.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrMissingEvent is returned when a notify request omits the event
	// name.
	ErrMissingEvent = errors.New("event name is required")
)
