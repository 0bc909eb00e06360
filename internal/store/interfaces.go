package store

import (
	"context"
	"time"

	"github.com/anikeenko/psysync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KVStore is the typed key-value interface the sync queue persists through.
// Implementations must treat a missing key as [ErrKeyNotFound].
//
// TTL semantics: a non-zero ttl on Set records an absolute expiry for the
// key. Expired entries are removed by an explicit [KVStore.Sweep] pass, not
// by a check hidden inside Get; until the sweep runs an expired entry is
// still readable.
type KVStore interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero means the entry never
	// expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// ScanPrefix returns all entries whose key starts with prefix,
	// ordered by key.
	ScanPrefix(ctx context.Context, prefix string) (map[string][]byte, error)

	// Sweep deletes every entry whose expiry has passed and returns the
	// number of entries removed.
	Sweep(ctx context.Context) (int64, error)
}

// QueueRepository persists the sync queue through the key-value substrate.
// The queue as a whole lives under one namespaced key as a JSON array;
// per-item shadow copies live under their own keys with a TTL and are
// pruned when an item completes.
type QueueRepository interface {
	// LoadQueue returns the persisted queue in insertion order. A queue
	// that was never persisted is returned as an empty slice, not an error.
	LoadQueue(ctx context.Context) ([]models.SyncItem, error)

	// SaveQueue replaces the persisted queue with items.
	SaveQueue(ctx context.Context, items []models.SyncItem) error

	// SaveShadow stores a staging copy of item under its shadow key.
	SaveShadow(ctx context.Context, item models.SyncItem) error

	// DeleteShadow removes the staging copy for the given item id.
	DeleteShadow(ctx context.Context, id string) error
}
