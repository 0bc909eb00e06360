package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/store"
	"github.com/anikeenko/psysync/internal/utils"
	"github.com/anikeenko/psysync/models"
)

// Queue owns the ordered list of pending mutations. Items are appended by
// Enqueue and mutated afterwards only by the [Processor]; callers observe
// them through Get and the completed-item housekeeping methods.
//
// The persisted queue array is the single shared mutable resource: every
// mutation is a load-modify-save of the whole array under the queue mutex,
// which keeps insertion order stable and makes each transition durable
// before the next one starts.
type Queue struct {
	repo   store.QueueRepository
	ids    *utils.UUIDGenerator
	logger *logger.Logger

	// mu serialises all load-modify-save cycles on the persisted array.
	mu sync.Mutex

	// kick is the best-effort processor trigger installed during wiring.
	// The network monitor remains the authoritative trigger.
	kickMu sync.RWMutex
	kick   func()
}

// NewQueue constructs a Queue persisting through repo.
func NewQueue(repo store.QueueRepository, log *logger.Logger) *Queue {
	return &Queue{
		repo:   repo,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}
}

// SetKick installs the opportunistic processor trigger called after every
// successful enqueue. Installed once during wiring, before any caller can
// reach Enqueue.
func (q *Queue) SetKick(kick func()) {
	q.kickMu.Lock()
	q.kick = kick
	q.kickMu.Unlock()
}

// Enqueue constructs a pending item for the given kind, persists it, and
// returns its id. It never blocks on network; a returned error means the
// local storage layer itself failed, which is surfaced loudly rather than
// retried.
func (q *Queue) Enqueue(ctx context.Context, kind string, payload json.RawMessage) (string, error) {
	item := models.SyncItem{
		ID:        q.ids.Generate(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
		Status:    models.StatusPending,
		RetryCount: 0,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return "", fmt.Errorf("enqueue %q: %w", kind, err)
	}

	items = append(items, item)
	if err = q.repo.SaveQueue(ctx, items); err != nil {
		return "", fmt.Errorf("enqueue %q: %w", kind, err)
	}

	if err = q.repo.SaveShadow(ctx, item); err != nil {
		return "", fmt.Errorf("enqueue %q: %w", kind, err)
	}

	q.logger.Debug().Str("id", item.ID).Str("kind", kind).Msg("enqueued sync item")

	q.kickMu.RLock()
	kick := q.kick
	q.kickMu.RUnlock()
	if kick != nil {
		kick()
	}

	return item.ID, nil
}

// Get returns the item with the given id, or [ErrItemNotFound].
func (q *Queue) Get(ctx context.Context, id string) (models.SyncItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("get item %s: %w", id, err)
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.SyncItem{}, fmt.Errorf("get item %s: %w", id, ErrItemNotFound)
}

// Snapshot returns a copy of the whole queue in insertion order.
func (q *Queue) Snapshot(ctx context.Context) ([]models.SyncItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.repo.LoadQueue(ctx)
}

// ListCompleted returns the completed items awaiting pruning.
func (q *Queue) ListCompleted(ctx context.Context) ([]models.SyncItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}

	completed := make([]models.SyncItem, 0)
	for _, item := range items {
		if item.Status == models.StatusCompleted {
			completed = append(completed, item)
		}
	}

	return completed, nil
}

// RemoveCompleted prunes every completed item from the queue. Pending,
// in-progress, and failed items are never touched. Safe to call at any time.
func (q *Queue) RemoveCompleted(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return fmt.Errorf("remove completed: %w", err)
	}

	remaining := make([]models.SyncItem, 0, len(items))
	for _, item := range items {
		if item.Status != models.StatusCompleted {
			remaining = append(remaining, item)
		}
	}

	if len(remaining) == len(items) {
		return nil
	}

	if err = q.repo.SaveQueue(ctx, remaining); err != nil {
		return fmt.Errorf("remove completed: %w", err)
	}

	return nil
}

// Retry resets a failed item to pending so that the next processing pass
// re-attempts it. The retry counter is preserved.
func (q *Queue) Retry(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return fmt.Errorf("retry item %s: %w", id, err)
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		if items[i].Status != models.StatusFailed {
			return fmt.Errorf("retry item %s: %w", id, ErrItemNotRetryable)
		}

		items[i].Status = models.StatusPending
		items[i].LastError = ""
		if err = q.repo.SaveQueue(ctx, items); err != nil {
			return fmt.Errorf("retry item %s: %w", id, err)
		}
		return nil
	}

	return fmt.Errorf("retry item %s: %w", id, ErrItemNotFound)
}

// RemoveStale evicts non-completed items older than maxAge along with their
// shadow copies. A zero maxAge disables eviction.
func (q *Queue) RemoveStale(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("remove stale: %w", err)
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	remaining := make([]models.SyncItem, 0, len(items))
	var evicted []models.SyncItem
	for _, item := range items {
		if item.Status != models.StatusCompleted && item.CreatedAt.Before(cutoff) {
			evicted = append(evicted, item)
			continue
		}
		remaining = append(remaining, item)
	}

	if len(evicted) == 0 {
		return 0, nil
	}

	if err = q.repo.SaveQueue(ctx, remaining); err != nil {
		return 0, fmt.Errorf("remove stale: %w", err)
	}

	for _, item := range evicted {
		if err = q.repo.DeleteShadow(ctx, item.ID); err != nil {
			q.logger.Warn().Err(err).Str("id", item.ID).Msg("failed to delete shadow of stale item")
		}
		q.logger.Info().Str("id", item.ID).Str("kind", item.Kind).Msg("evicted stale sync item")
	}

	return len(evicted), nil
}

// update applies mutate to the item with the given id and persists the whole
// array. Used by the processor for its state transitions.
func (q *Queue) update(ctx context.Context, id string, mutate func(*models.SyncItem)) (models.SyncItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, err := q.repo.LoadQueue(ctx)
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("update item %s: %w", id, err)
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}

		mutate(&items[i])
		if err = q.repo.SaveQueue(ctx, items); err != nil {
			return models.SyncItem{}, fmt.Errorf("update item %s: %w", id, err)
		}
		return items[i], nil
	}

	return models.SyncItem{}, fmt.Errorf("update item %s: %w", id, ErrItemNotFound)
}

// pruneShadow removes the staging copy of a completed item.
func (q *Queue) pruneShadow(ctx context.Context, id string) {
	if err := q.repo.DeleteShadow(ctx, id); err != nil {
		q.logger.Warn().Err(err).Str("id", id).Msg("failed to prune shadow copy")
	}
}
