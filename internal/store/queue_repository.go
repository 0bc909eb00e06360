package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anikeenko/psysync/models"
)

// Namespaced keys for queue persistence. The queue is stored as one JSON
// array; per-item shadow copies carry a TTL so abandoned staging data ages
// out via the sweep.
const (
	queueKey        = "sync:queue"
	shadowKeyPrefix = "sync:item:"
)

// shadowTTL bounds how long a staging copy outlives its item. Completed
// items delete their shadow eagerly; the TTL only covers crashes between
// persist and prune.
const shadowTTL = 7 * 24 * time.Hour

type queueRepository struct {
	kv KVStore
}

// NewQueueRepository returns a [QueueRepository] persisting through kv.
func NewQueueRepository(kv KVStore) QueueRepository {
	return &queueRepository{kv: kv}
}

func (r *queueRepository) LoadQueue(ctx context.Context) ([]models.SyncItem, error) {
	raw, err := r.kv.Get(ctx, queueKey)
	if errors.Is(err, ErrKeyNotFound) {
		return []models.SyncItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}

	var items []models.SyncItem
	if err = json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode queue: %w", err)
	}

	return items, nil
}

func (r *queueRepository) SaveQueue(ctx context.Context, items []models.SyncItem) error {
	if items == nil {
		items = []models.SyncItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}

	if err = r.kv.Set(ctx, queueKey, raw, 0); err != nil {
		return fmt.Errorf("save queue: %w", err)
	}

	return nil
}

func (r *queueRepository) SaveShadow(ctx context.Context, item models.SyncItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode shadow item %s: %w", item.ID, err)
	}

	if err = r.kv.Set(ctx, shadowKeyPrefix+item.ID, raw, shadowTTL); err != nil {
		return fmt.Errorf("save shadow item %s: %w", item.ID, err)
	}

	return nil
}

func (r *queueRepository) DeleteShadow(ctx context.Context, id string) error {
	if err := r.kv.Delete(ctx, shadowKeyPrefix+id); err != nil {
		return fmt.Errorf("delete shadow item %s: %w", id, err)
	}

	return nil
}
