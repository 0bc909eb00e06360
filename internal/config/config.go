// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sergey Anikeenko

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for psysync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds identity-token settings for the relay server.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the local key-value substrate used
	// by the sync queue.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the relay
	// server's HTTP/websocket listener.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for the remote-commit HTTP client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers (connectivity
	// probing, TTL sweep, stale-item eviction).
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds identity-token settings shared by the relay server and the
// admin notify surface.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify identity
	// tokens. Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim expected on every accepted token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid
	// (e.g. "1h", "30m"). Used only by token-issuing tooling.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage holds settings for the local key-value store backing the queue.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the embedded key-value database.
type DB struct {
	// DSN is the SQLite data source name, typically a file path
	// (e.g. "psysync.db"). In-memory DSNs are rejected for the client
	// because queue durability across restarts is the whole point.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the relay server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP/websocket server
	// listens, in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// HTTP request before the server cancels it (e.g. "30s", "1m").
	// Websocket sessions are exempt.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings for the outbound remote-commit HTTP client.
type Adapter struct {
	// BaseURL is the platform API base URL the commit handlers post to
	// (e.g. "https://api.example.org").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds each remote-commit call. A timed-out call is
	// treated as a commit failure and retried on the next pass.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BearerToken, when set, is attached to every commit request as an
	// Authorization header.
	// Env: ADAPTER_BEARER_TOKEN
	BearerToken string `env:"BEARER_TOKEN"`
}

// Workers holds background worker settings.
type Workers struct {
	// ProbeInterval defines how often the network monitor probes
	// connectivity (e.g. "15s").
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// SweepInterval defines how often the TTL sweep removes expired
	// key-value entries (e.g. "5m").
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// StaleAge is the age past which non-completed queue items are
	// evicted by the stale sweep. Zero disables stale eviction.
	// Env: WORKERS_STALE_AGE
	StaleAge time.Duration `env:"STALE_AGE"`
}
