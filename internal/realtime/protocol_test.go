package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage_ResourceUpdate(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"kind":"resource_update","resource_id":"abc","event":"answer_saved","payload":{"q":1}}`))
	require.NoError(t, err)

	update, ok := msg.(ResourceUpdate)
	require.True(t, ok)
	assert.Equal(t, "abc", update.ResourceID)
	assert.Equal(t, "answer_saved", update.Event)
	assert.JSONEq(t, `{"q":1}`, string(update.Payload))
}

func TestDecodeMessage_ResourceUpdateDefaultsEvent(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"kind":"resource_update","resource_id":"abc"}`))
	require.NoError(t, err)

	update, ok := msg.(ResourceUpdate)
	require.True(t, ok)
	assert.Equal(t, "resource_update", update.Event)
}

func TestDecodeMessage_AdminBroadcast(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"kind":"admin_broadcast","message":"maintenance"}`))
	require.NoError(t, err)

	broadcast, ok := msg.(AdminBroadcast)
	require.True(t, ok)
	assert.Equal(t, "maintenance", broadcast.Message)
	assert.True(t, privileged(broadcast))
}

func TestDecodeMessage_JoinRoom(t *testing.T) {
	msg, err := DecodeMessage([]byte(`{"kind":"join_room","room":"test:abc"}`))
	require.NoError(t, err)

	join, ok := msg.(JoinRoom)
	require.True(t, ok)
	assert.Equal(t, "test:abc", join.Room)
	assert.False(t, privileged(join))
}

func TestDecodeMessage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "not json", raw: `{{{`, wantErr: ErrMalformedMessage},
		{name: "missing kind", raw: `{"payload":{}}`, wantErr: ErrMissingKind},
		{name: "empty kind", raw: `{"kind":""}`, wantErr: ErrMissingKind},
		{name: "unknown kind", raw: `{"kind":"teleport"}`, wantErr: ErrUnknownMessageKind},
		{name: "kind is not a string", raw: `{"kind":42}`, wantErr: ErrMalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := DecodeMessage([]byte(tt.raw))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, msg)
		})
	}
}
