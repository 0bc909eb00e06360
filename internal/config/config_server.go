package config

import (
	"fmt"
	"time"
)

// ServerAuth holds token verification settings for the relay server.
type ServerAuth struct {
	// TokenSignKey verifies inbound identity tokens.
	TokenSignKey string
	// TokenIssuer is the expected "iss" claim.
	TokenIssuer string
}

// ServerConfig is the top-level relay-server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// Server contains listener address and timeout settings.
	Server Server
	// Auth contains token verification settings.
	Auth ServerAuth
}

// GetServerConfig builds and validates a server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	base, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error building structured config: %w", err)
	}

	cfg := &ServerConfig{
		Server: base.Server,
		Auth: ServerAuth{
			TokenSignKey: base.Auth.TokenSignKey,
			TokenIssuer:  base.Auth.TokenIssuer,
		},
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "0.0.0.0:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
