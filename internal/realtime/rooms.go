package realtime

import (
	"sync"
)

// Room name construction. Authenticated connections always hold exactly one
// identity room and one role room; resource rooms are joined explicitly.
const (
	PublicRoom         = "public"
	userRoomPrefix     = "user:"
	roleRoomPrefix     = "role:"
	resourceRoomPrefix = "test:"
)

func UserRoom(userID string) string       { return userRoomPrefix + userID }
func RoleRoom(role string) string         { return roleRoomPrefix + role }
func ResourceRoom(resourceID string) string { return resourceRoomPrefix + resourceID }

// Rooms maintains room membership and routes events to members. The double
// map keeps both directions cheap: delivery scans one room, disconnect
// cleanup scans one connection's rooms.
type Rooms struct {
	mu        sync.RWMutex
	rooms     map[string]map[string]Conn // room -> connID -> conn
	connRooms map[string]map[string]bool // connID -> room set
}

func NewRooms() *Rooms {
	return &Rooms{
		rooms:     make(map[string]map[string]Conn),
		connRooms: make(map[string]map[string]bool),
	}
}

// Join adds conn to the named room. Joining a room twice is a no-op.
// Resource-room joins are not authorization-gated here; gating happens at
// the message-kind level.
func (r *Rooms) Join(conn Conn, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[room] == nil {
		r.rooms[room] = make(map[string]Conn)
	}
	r.rooms[room][conn.ID()] = conn

	if r.connRooms[conn.ID()] == nil {
		r.connRooms[conn.ID()] = make(map[string]bool)
	}
	r.connRooms[conn.ID()][room] = true
}

// Leave removes conn from the named room.
func (r *Rooms) Leave(conn Conn, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeMembership(conn.ID(), room)
}

// LeaveAll releases every membership held by the connection. Called on
// disconnect; no message is broadcast.
func (r *Rooms) LeaveAll(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.connRooms[connID] {
		r.removeMembership(connID, room)
	}
	delete(r.connRooms, connID)
}

func (r *Rooms) removeMembership(connID, room string) {
	if r.rooms[room] != nil {
		delete(r.rooms[room], connID)
		if len(r.rooms[room]) == 0 {
			delete(r.rooms, room)
		}
	}

	if r.connRooms[connID] != nil {
		delete(r.connRooms[connID], room)
		if len(r.connRooms[connID]) == 0 {
			delete(r.connRooms, connID)
		}
	}
}

// MemberRooms returns the rooms the connection is currently in.
func (r *Rooms) MemberRooms(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]string, 0, len(r.connRooms[connID]))
	for room := range r.connRooms[connID] {
		rooms = append(rooms, room)
	}
	return rooms
}

// Members returns the connections currently in the named room.
func (r *Rooms) Members(room string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Conn, 0, len(r.rooms[room]))
	for _, conn := range r.rooms[room] {
		members = append(members, conn)
	}
	return members
}

// Route delivers event/data to every connection in the named room.
// Routing to a room with zero members is a no-op, not an error.
func (r *Rooms) Route(room string, event string, data any) int {
	members := r.Members(room)
	for _, conn := range members {
		conn.Emit(event, data)
	}
	return len(members)
}
