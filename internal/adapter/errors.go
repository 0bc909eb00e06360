package adapter

import "errors"

var (
	// ErrUnknownKind is returned by [Registry.Lookup] when no handler is
	// registered for a sync-item kind. This is a configuration error, not
	// a retryable runtime failure.
	ErrUnknownKind = errors.New("unknown sync item kind")

	// ErrUnauthorized is returned when the commit endpoint rejects the
	// configured bearer token.
	ErrUnauthorized = errors.New("client unauthorized")
)
