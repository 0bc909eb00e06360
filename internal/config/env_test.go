package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnv_FullMapping verifies that every documented environment
// variable lands in its StructuredConfig field.
func TestParseEnv_FullMapping(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SIGN_KEY", "secret")
	t.Setenv("AUTH_TOKEN_ISSUER", "psysync")
	t.Setenv("AUTH_TOKEN_DURATION", "1h")
	t.Setenv("STORAGE_DB_DATABASE_URI", "psysync.db")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "30s")
	t.Setenv("ADAPTER_BASE_URL", "https://api.example.org")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "15s")
	t.Setenv("ADAPTER_BEARER_TOKEN", "client-secret")
	t.Setenv("WORKERS_PROBE_INTERVAL", "10s")
	t.Setenv("WORKERS_SWEEP_INTERVAL", "5m")
	t.Setenv("WORKERS_STALE_AGE", "720h")
	t.Setenv("CONFIG", "/etc/psysync/config.json")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

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
	assert.Equal(t, "/etc/psysync/config.json", cfg.JSONFilePath)
}

// TestParseEnv_EmptyEnvironment verifies that an empty environment leaves
// the config at its zero value without error.
func TestParseEnv_EmptyEnvironment(t *testing.T) {
	t.Setenv("CONFIG", "")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestParseEnv_BadDuration verifies that an unparsable duration value is
// reported as an error.
func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("WORKERS_PROBE_INTERVAL", "soon")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}
