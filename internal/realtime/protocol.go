package realtime

import (
	"encoding/json"
	"fmt"
)

// Inbound message kinds recognised by the router.
const (
	kindResourceUpdate = "resource_update"
	kindAdminBroadcast = "admin_broadcast"
	kindJoinRoom       = "join_room"
)

// Server-to-client event names.
const (
	EventAuthError    = "auth_error"
	EventError        = "error"
	EventRoomJoined   = "room_joined"
	EventAdminMessage = "admin_message"
)

// Message is the decoded form of one inbound client envelope. Exactly one
// concrete variant exists per recognised kind, so dispatch is an exhaustive
// type switch instead of a default branch over string tags.
type Message interface {
	messageKind() string
}

// ResourceUpdate carries an opaque state update targeted at one resource
// room (a test session). The router never inspects Payload.
type ResourceUpdate struct {
	// ResourceID names the test session the update belongs to.
	ResourceID string `json:"resource_id"`

	// Event is the client-chosen event name delivered to the room;
	// defaults to "resource_update" when absent.
	Event string `json:"event"`

	// Payload is forwarded verbatim to room members.
	Payload json.RawMessage `json:"payload"`
}

func (ResourceUpdate) messageKind() string { return kindResourceUpdate }

// AdminBroadcast is the privileged fan-out-to-everyone message. Requires
// the admin role.
type AdminBroadcast struct {
	// Message is the announcement text forwarded to every connection.
	Message string `json:"message"`
}

func (AdminBroadcast) messageKind() string { return kindAdminBroadcast }

// JoinRoom asks the router to add the sender to a named room.
type JoinRoom struct {
	// Room is the room name to join.
	Room string `json:"room"`
}

func (JoinRoom) messageKind() string { return kindJoinRoom }

// envelope is the raw inbound shape; Kind selects the variant and the rest
// of the body is re-decoded into it.
type envelope struct {
	Kind string `json:"kind"`
}

// DecodeMessage parses one inbound frame into its typed variant.
// A missing kind yields [ErrMissingKind]; an unrecognised kind yields
// [ErrUnknownMessageKind].
func DecodeMessage(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	if env.Kind == "" {
		return nil, ErrMissingKind
	}

	switch env.Kind {
	case kindResourceUpdate:
		var m ResourceUpdate
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		if m.Event == "" {
			m.Event = kindResourceUpdate
		}
		return m, nil
	case kindAdminBroadcast:
		var m AdminBroadcast
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return m, nil
	case kindJoinRoom:
		var m JoinRoom
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageKind, env.Kind)
	}
}

// privileged reports whether the message kind requires the admin role.
func privileged(m Message) bool {
	switch m.(type) {
	case AdminBroadcast:
		return true
	default:
		return false
	}
}

// ServerEvent is the outbound frame shape: an event name plus an opaque
// data body.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}
