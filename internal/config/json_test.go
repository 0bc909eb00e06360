package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── parseJSON ─────────────────────────────────────────────────────────────────

// TestParseJSON_FullConfig verifies that every section of the JSON file is
// mapped into the StructuredConfig.
func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"auth": map[string]any{
			"token_sign_key": "secret",
			"token_issuer":   "psysync",
			"token_duration": "1h",
		},
		"storage": map[string]any{
			"db": map[string]any{"dsn": "psysync.db"},
		},
		"server": map[string]any{
			"http_address":    "0.0.0.0:9090",
			"request_timeout": "30s",
		},
		"adapter": map[string]any{
			"base_url":        "https://api.example.org",
			"request_timeout": "15s",
			"bearer_token":    "client-secret",
		},
		"workers": map[string]any{
			"probe_interval": "10s",
			"sweep_interval": "5m",
			"stale_age":      "720h",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "psysync", cfg.Auth.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "psysync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://api.example.org", cfg.Adapter.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "client-secret", cfg.Adapter.BearerToken)
	assert.Equal(t, 10*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SweepInterval)
	assert.Equal(t, 720*time.Hour, cfg.Workers.StaleAge)
	assert.Empty(t, cfg.JSONFilePath, "the parsed config never re-points at another file")
}

// TestParseJSON_MissingFile verifies the error path for a non-existent file.
func TestParseJSON_MissingFile(t *testing.T) {
	cfg, err := parseJSON("/no/such/config.json")
	require.Error(t, err)
	assert.Nil(t, cfg)
}

// TestParseJSON_MalformedFile verifies the error path for invalid JSON.
func TestParseJSON_MalformedFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{broken`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := parseJSON(f.Name())
	require.Error(t, err)
	assert.Nil(t, cfg)
}

// ── Duration ──────────────────────────────────────────────────────────────────

// TestDuration_UnmarshalJSON covers the accepted duration encodings: Go
// duration strings and raw nanosecond numbers.
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", raw: `"1h30m"`, want: 90 * time.Minute},
		{name: "seconds string", raw: `"45s"`, want: 45 * time.Second},
		{name: "number is nanoseconds", raw: `1000000000`, want: time.Second},
		{name: "bad string", raw: `"not-a-duration"`, wantErr: true},
		{name: "not json", raw: `{{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.raw), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

// TestDuration_MarshalRoundTrip verifies that a marshaled Duration decodes
// back to the same value.
func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(15 * time.Second)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"15s"`, string(data))

	var back Duration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}
