// Package store implements the local persistence layer of the sync client:
// an SQLite-backed key-value substrate with TTL sweep semantics and the
// queue repository that persists pending mutations through it.
package store

import (
	"context"
	"fmt"

	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/logger"
)

// ClientStorages groups all client-side storage components into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// KV is the raw key-value substrate. Exposed so background workers
	// can run the TTL sweep against it.
	KV KVStore

	// Queue is the queue repository used by the sync queue manager.
	Queue QueueRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to a fresh
//     key-value store and queue repository.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv := NewSQLiteKV(db, logger)

	return &ClientStorages{
		KV:    kv,
		Queue: NewQueueRepository(kv),
	}, nil
}
