package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/models"
)

// Conn is one live realtime session as seen by the registry, the room
// router, and the hub. The concrete websocket transport lives behind it so
// routing logic stays testable without sockets.
type Conn interface {
	// ID returns the transport-assigned connection identifier.
	ID() string

	// Identity returns the authenticated principal, with ok false for
	// anonymous connections.
	Identity() (models.Identity, bool)

	// Emit queues one server event for delivery. Delivery is best-effort:
	// a slow consumer's frame is dropped rather than blocking the caller.
	Emit(event string, data any)

	// setIdentity binds the authenticated principal after token
	// verification. Unexported: only the hub assigns identities.
	setIdentity(identity models.Identity)
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// wsConn is the gorilla/websocket-backed Conn. Reads happen on the caller's
// goroutine (the hub's connection handler); writes are serialised through
// the send channel and a single writer goroutine.
type wsConn struct {
	id     string
	ws     *websocket.Conn
	send   chan []byte
	logger *logger.Logger

	mu       sync.RWMutex
	identity *models.Identity

	closeOnce sync.Once
	closed    chan struct{}
}

func newWSConn(id string, ws *websocket.Conn, log *logger.Logger) *wsConn {
	return &wsConn{
		id:     id,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		logger: log,
		closed: make(chan struct{}),
	}
}

func (c *wsConn) ID() string {
	return c.id
}

func (c *wsConn) Identity() (models.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.identity == nil {
		return models.Identity{}, false
	}
	return *c.identity, true
}

func (c *wsConn) setIdentity(identity models.Identity) {
	c.mu.Lock()
	c.identity = &identity
	c.mu.Unlock()
}

func (c *wsConn) Emit(event string, data any) {
	frame, err := json.Marshal(ServerEvent{Event: event, Data: data})
	if err != nil {
		c.logger.Error().Err(err).Str("event", event).Msg("cannot encode server event")
		return
	}

	select {
	case c.send <- frame:
	case <-c.closed:
	default:
		c.logger.Warn().Str("conn", c.id).Str("event", event).Msg("send buffer full, frame dropped")
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings. Runs on its own goroutine per connection.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

// readLoop delivers inbound frames to handle until the peer goes away.
func (c *wsConn) readLoop(handle func(raw []byte)) {
	defer c.close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Str("conn", c.id).Msg("websocket read error")
			}
			return
		}
		handle(raw)
	}
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.ws.Close()
	})
}
