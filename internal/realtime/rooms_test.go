package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "user:u1", UserRoom("u1"))
	assert.Equal(t, "role:admin", RoleRoom("admin"))
	assert.Equal(t, "test:abc", ResourceRoom("abc"))
}

func TestRooms_JoinIsIdempotent(t *testing.T) {
	rooms := NewRooms()
	conn := newFakeConn("c1")

	rooms.Join(conn, "test:abc")
	rooms.Join(conn, "test:abc")

	assert.Len(t, rooms.Members("test:abc"), 1)
	assert.Len(t, rooms.MemberRooms("c1"), 1)
}

func TestRooms_LeaveRemovesMembership(t *testing.T) {
	rooms := NewRooms()
	conn := newFakeConn("c1")
	other := newFakeConn("c2")

	rooms.Join(conn, "test:abc")
	rooms.Join(other, "test:abc")
	rooms.Leave(conn, "test:abc")

	members := rooms.Members("test:abc")
	require.Len(t, members, 1)
	assert.Equal(t, "c2", members[0].ID())
	assert.Empty(t, rooms.MemberRooms("c1"))
}

func TestRooms_LeaveAll(t *testing.T) {
	rooms := NewRooms()
	conn := newFakeConn("c1")

	rooms.Join(conn, PublicRoom)
	rooms.Join(conn, UserRoom("u1"))
	rooms.Join(conn, ResourceRoom("abc"))

	rooms.LeaveAll("c1")

	assert.Empty(t, rooms.MemberRooms("c1"))
	assert.Empty(t, rooms.Members(PublicRoom))
	assert.Empty(t, rooms.Members(ResourceRoom("abc")))
}

func TestRooms_RouteReturnsDeliveryCount(t *testing.T) {
	rooms := NewRooms()

	a := newFakeConn("a")
	b := newFakeConn("b")
	outsider := newFakeConn("outsider")

	rooms.Join(a, "test:abc")
	rooms.Join(b, "test:abc")
	rooms.Join(outsider, "test:xyz")

	delivered := rooms.Route("test:abc", "answer_saved", map[string]int{"q": 1})
	assert.Equal(t, 2, delivered)

	assert.Equal(t, 1, a.countEvent("answer_saved"))
	assert.Equal(t, 1, b.countEvent("answer_saved"))
	assert.Zero(t, outsider.countEvent("answer_saved"))
}

func TestRooms_RouteToEmptyRoomIsNoop(t *testing.T) {
	rooms := NewRooms()

	assert.Zero(t, rooms.Route("test:nobody-here", "ping", nil))
}

func TestRegistry_AddGetRemove(t *testing.T) {
	registry := NewRegistry()
	conn := newFakeConn("c1")

	registry.Add(conn)
	assert.Equal(t, 1, registry.Count())

	got, ok := registry.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "c1", got.ID())

	registry.Remove("c1")
	assert.Zero(t, registry.Count())

	_, ok = registry.Get("c1")
	assert.False(t, ok)

	// Повторное удаление безопасно.
	registry.Remove("c1")
}
