package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the remote-commit transport.
type ClientAdapter struct {
	// BaseURL is the platform API base URL commit handlers post to.
	BaseURL string
	// RequestTimeout is the timeout for outbound commit requests.
	RequestTimeout time.Duration
	// BearerToken is attached to every commit request when non-empty.
	BearerToken string
}

// ClientDB contains local database connection settings for the sync client.
type ClientDB struct {
	// DSN is the SQLite connection string used for the local queue store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
	// SweepInterval defines how often the TTL sweep runs.
	SweepInterval time.Duration
	// StaleAge is the eviction age for abandoned queue items.
	StaleAge time.Duration
}

// ClientConfig is the top-level sync-client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains remote-commit transport settings.
	Adapter ClientAdapter
	// Storage contains local storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the sync-client runtime, applies defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	base, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error building structured config: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        base.Adapter.BaseURL,
			RequestTimeout: base.Adapter.RequestTimeout,
			BearerToken:    base.Adapter.BearerToken,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: base.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			ProbeInterval: base.Workers.ProbeInterval,
			SweepInterval: base.Workers.SweepInterval,
			StaleAge:      base.Workers.StaleAge,
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Workers.ProbeInterval == 0 {
		cfg.Workers.ProbeInterval = 15 * time.Second
	}
	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = 5 * time.Minute
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "psysync.db"
	}
}
