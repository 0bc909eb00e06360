package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_Set covers valid and invalid "[host]:[port]" values.
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{name: "host and port", value: "localhost:8080", wantHost: "localhost", wantPort: 8080},
		{name: "empty host", value: ":9090", wantHost: "", wantPort: 9090},
		{name: "ip host", value: "127.0.0.1:80", wantHost: "127.0.0.1", wantPort: 80},
		{name: "surrounding spaces", value: "  localhost:8080  ", wantHost: "localhost", wantPort: 8080},
		{name: "no port", value: "localhost", wantErr: true},
		{name: "non-numeric port", value: "localhost:http", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, addr.Host)
			assert.Equal(t, tt.wantPort, addr.Port)
		})
	}
}

// TestNetAddress_String verifies the flag.Value string form, including the
// never-set case.
func TestNetAddress_String(t *testing.T) {
	assert.Empty(t, (&NetAddress{}).String())
	assert.Equal(t, "localhost:8080", (&NetAddress{Host: "localhost", Port: 8080}).String())
	assert.Equal(t, ":9090", (&NetAddress{Port: 9090}).String())
}
