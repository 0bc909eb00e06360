package realtime

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/utils"
)

// Hub is the broadcast server composition root. It wires the connection
// registry and the room router to the websocket transport and exposes the
// send primitives the rest of the backend calls.
//
// A Hub is constructed once at process start and passed by injection to
// whatever needs to emit events; there is deliberately no package-level
// instance. Every send primitive fails safe: before Start (or after Stop)
// it logs and no-ops, since notification delivery is best-effort.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	verifier TokenVerifier
	logger   *logger.Logger
	ids      *utils.UUIDGenerator
	upgrader websocket.Upgrader

	ready atomic.Bool
}

func NewHub(verifier TokenVerifier, log *logger.Logger) *Hub {
	return &Hub{
		registry: NewRegistry(),
		rooms:    NewRooms(),
		verifier: verifier,
		logger:   log,
		ids:      utils.NewUUIDGenerator(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from the platform origin; origin
			// enforcement happens at the reverse proxy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start marks the hub ready for delivery.
func (h *Hub) Start() {
	h.ready.Store(true)
	h.logger.Info().Msg("broadcast hub started")
}

// Stop marks the hub stopped; subsequent sends log and no-op.
func (h *Hub) Stop() {
	h.ready.Store(false)
	h.logger.Info().Msg("broadcast hub stopped")
}

// SendToUser delivers event/data to every connection of the given user.
func (h *Hub) SendToUser(userID, event string, data any) {
	if !h.guard("SendToUser") {
		return
	}
	h.rooms.Route(UserRoom(userID), event, data)
}

// SendToRole delivers event/data to every connection holding the role.
func (h *Hub) SendToRole(role, event string, data any) {
	if !h.guard("SendToRole") {
		return
	}
	h.rooms.Route(RoleRoom(role), event, data)
}

// SendToResource delivers event/data to every connection that joined the
// resource room of the given test session.
func (h *Hub) SendToResource(resourceID, event string, data any) {
	if !h.guard("SendToResource") {
		return
	}
	h.rooms.Route(ResourceRoom(resourceID), event, data)
}

// BroadcastAll delivers event/data to every live connection regardless of
// room membership.
func (h *Hub) BroadcastAll(event string, data any) {
	if !h.guard("BroadcastAll") {
		return
	}
	for _, conn := range h.registry.All() {
		conn.Emit(event, data)
	}
}

func (h *Hub) guard(op string) bool {
	if h == nil || !h.ready.Load() {
		if h != nil {
			h.logger.Warn().Str("op", op).Msg("broadcast hub not ready, delivery skipped")
		}
		return false
	}
	return true
}

// Connect registers a connection and resolves its identity from the given
// token. A failed verification degrades the connection to anonymous and
// reports auth_error instead of closing it, matching the platform's lenient
// auth posture. Authenticated connections auto-join their identity room and
// role room; anonymous ones join the public room.
func (h *Hub) Connect(conn Conn, token string) {
	h.registry.Add(conn)

	if token == "" {
		h.rooms.Join(conn, PublicRoom)
		h.logger.Debug().Str("conn", conn.ID()).Msg("anonymous connection joined public room")
		return
	}

	identity, err := h.verifier.Verify(token)
	if err != nil {
		h.logger.Warn().Err(err).Str("conn", conn.ID()).Msg("token verification failed, degrading to anonymous")
		conn.Emit(EventAuthError, map[string]string{"message": "identity verification failed"})
		h.rooms.Join(conn, PublicRoom)
		return
	}

	conn.setIdentity(identity)

	h.rooms.Join(conn, UserRoom(identity.UserID))
	h.rooms.Join(conn, RoleRoom(identity.Role))
	h.logger.Info().
		Str("conn", conn.ID()).
		Str("user_id", identity.UserID).
		Str("role", identity.Role).
		Msg("connection authenticated")
}

// Disconnect releases every room membership and forgets the connection.
// No message is broadcast on disconnect.
func (h *Hub) Disconnect(conn Conn) {
	h.rooms.LeaveAll(conn.ID())
	h.registry.Remove(conn.ID())
	h.logger.Debug().Str("conn", conn.ID()).Msg("connection closed")
}

// HandleMessage validates, authorizes, and routes one inbound frame from
// conn. Protocol and authorization failures are reported to the offending
// connection only and never propagate further.
func (h *Hub) HandleMessage(conn Conn, raw []byte) {
	msg, err := DecodeMessage(raw)
	if err != nil {
		conn.Emit(EventError, map[string]string{"message": err.Error()})
		return
	}

	if privileged(msg) {
		identity, ok := conn.Identity()
		if !ok || !identity.IsAdmin() {
			conn.Emit(EventError, map[string]string{"message": ErrNotAuthorized.Error()})
			return
		}
	}

	switch m := msg.(type) {
	case ResourceUpdate:
		h.rooms.Route(ResourceRoom(m.ResourceID), m.Event, m.Payload)
	case AdminBroadcast:
		h.BroadcastAll(EventAdminMessage, map[string]string{
			"message":   m.Message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	case JoinRoom:
		h.rooms.Join(conn, m.Room)
		conn.Emit(EventRoomJoined, map[string]string{"room": m.Room})
	}
}

// HandleWS upgrades an HTTP request to a websocket session and runs it to
// completion. The identity token travels in the "token" query parameter or
// a bearer Authorization header.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := newWSConn(h.ids.Generate(), ws, h.logger.GetChildLogger())
	go conn.writePump()

	token := r.URL.Query().Get("token")
	if token == "" {
		if header := r.Header.Get("Authorization"); header != "" {
			if parsed, err := utils.ParseBearerToken(header); err == nil {
				token = parsed
			}
		}
	}

	h.Connect(conn, token)

	conn.readLoop(func(raw []byte) {
		h.HandleMessage(conn, raw)
	})

	h.Disconnect(conn)
}

// Rooms exposes the room router for the admin HTTP surface and tests.
func (h *Hub) Rooms() *Rooms {
	return h.rooms
}

// Registry exposes the connection registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}
