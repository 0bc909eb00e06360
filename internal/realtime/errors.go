package realtime

import "errors"

var (
	// ErrMalformedMessage is returned when an inbound frame is not valid
	// JSON or a variant body cannot be decoded.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrMissingKind is returned when an inbound envelope has no kind field.
	ErrMissingKind = errors.New("message kind is required")

	// ErrUnknownMessageKind is returned for envelope kinds the router does
	// not recognise.
	ErrUnknownMessageKind = errors.New("unknown message kind")

	// ErrNotAuthorized is reported to a connection that sent a privileged
	// message kind without the admin role.
	ErrNotAuthorized = errors.New("not authorized for this message kind")
)
