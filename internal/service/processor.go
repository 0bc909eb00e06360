package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/anikeenko/psysync/internal/adapter"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/models"
)

// Processor walks the queue and drives each item through its retry state
// machine: pending -> in_progress -> completed | failed.
//
// At most one pass runs at a time; a trigger arriving while a pass is in
// flight is dropped, and items enqueued mid-pass are picked up by the next
// trigger, not the current pass.
type Processor struct {
	queue     *Queue
	registry  *adapter.Registry
	observers *Observers
	logger    *logger.Logger

	// running is the re-entrancy guard for the at-most-one-pass rule.
	running atomic.Bool
}

// NewProcessor constructs a Processor over the given queue and commit
// handler registry.
func NewProcessor(queue *Queue, registry *adapter.Registry, observers *Observers, log *logger.Logger) *Processor {
	return &Processor{
		queue:     queue,
		registry:  registry,
		observers: observers,
		logger:    log,
	}
}

// ProcessQueue runs one full pass over the queue in insertion order,
// skipping completed items. Each item's commit is isolated: a failing or
// panicking handler marks that item failed and the pass moves on, so one
// bad item never blocks the rest of the queue.
//
// After the pass all registered observers are notified once with the
// aggregate outcome and a fresh queue snapshot. Returns without doing
// anything when another pass is already running.
func (p *Processor) ProcessQueue(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Debug().Msg("sync pass already running, trigger dropped")
		return
	}
	defer p.running.Store(false)

	snapshot, err := p.queue.Snapshot(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("sync pass aborted: cannot snapshot queue")
		return
	}

	touched := 0
	failed := 0
	for _, item := range snapshot {
		if item.Status == models.StatusCompleted {
			continue
		}

		touched++
		if err := p.processItem(ctx, item); err != nil {
			failed++
		}
	}

	if touched == 0 {
		return
	}

	aggregate := models.StatusCompleted
	if failed > 0 {
		aggregate = models.StatusFailed
	}

	items, err := p.queue.Snapshot(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("cannot snapshot queue after sync pass")
		items = nil
	}

	p.logger.Info().
		Int("touched", touched).
		Int("failed", failed).
		Str("aggregate", string(aggregate)).
		Msg("sync pass finished")

	p.observers.Notify(StatusNotification{Status: aggregate, Items: items})
}

// processItem commits one item and records the outcome. The returned error
// reports the commit result to the pass aggregate; it has already been
// recorded on the item itself.
func (p *Processor) processItem(ctx context.Context, item models.SyncItem) error {
	if _, err := p.queue.update(ctx, item.ID, func(it *models.SyncItem) {
		it.Status = models.StatusInProgress
	}); err != nil {
		p.logger.Error().Err(err).Str("id", item.ID).Msg("cannot persist in_progress transition")
		return err
	}

	commitErr := p.commit(ctx, item)
	if commitErr == nil {
		if _, err := p.queue.update(ctx, item.ID, func(it *models.SyncItem) {
			it.Status = models.StatusCompleted
			it.LastError = ""
		}); err != nil {
			p.logger.Error().Err(err).Str("id", item.ID).Msg("cannot persist completed transition")
			return err
		}

		p.queue.pruneShadow(ctx, item.ID)
		p.logger.Debug().Str("id", item.ID).Str("kind", item.Kind).Msg("sync item committed")
		return nil
	}

	if _, err := p.queue.update(ctx, item.ID, func(it *models.SyncItem) {
		it.Status = models.StatusFailed
		it.RetryCount++
		it.LastError = commitErr.Error()
	}); err != nil {
		p.logger.Error().Err(err).Str("id", item.ID).Msg("cannot persist failed transition")
	}

	p.logger.Warn().
		Err(commitErr).
		Str("id", item.ID).
		Str("kind", item.Kind).
		Int("retry_count", item.RetryCount+1).
		Msg("sync item commit failed")

	return commitErr
}

// commit resolves the item's handler and invokes it, converting panics into
// ordinary errors so one handler cannot abort the pass.
func (p *Processor) commit(ctx context.Context, item models.SyncItem) (err error) {
	handler, err := p.registry.Lookup(item.Kind)
	if err != nil {
		// Unknown kind is a configuration error: surfaced loudly, but the
		// item is still marked failed so it stays inspectable.
		p.logger.Error().Err(err).Str("id", item.ID).Msg("no commit handler registered")
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("commit handler panic: %v", r)
		}
	}()

	if err = handler.Commit(ctx, item.Payload); err != nil {
		return err
	}

	return nil
}

// Running reports whether a pass is currently in flight.
func (p *Processor) Running() bool {
	return p.running.Load()
}
