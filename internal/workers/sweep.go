package workers

import (
	"context"
	"sync"
	"time"

	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/service"
	"github.com/anikeenko/psysync/internal/store"
)

// SweepWorker periodically removes expired key-value entries and evicts
// stale queue items. Eviction is an explicit background pass, never a
// hidden check inside reads.
type SweepWorker struct {
	kv       store.KVStore
	queue    *service.Queue
	interval time.Duration
	staleAge time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweepWorker constructs a sweep worker. A staleAge of zero disables
// queue eviction while keeping the TTL sweep.
func NewSweepWorker(kv store.KVStore, queue *service.Queue, interval, staleAge time.Duration, log *logger.Logger) *SweepWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &SweepWorker{
		kv:       kv,
		queue:    queue,
		interval: interval,
		staleAge: staleAge,
		logger:   log,
	}
}

// Run implements [Worker]. It launches the sweep loop in a background
// goroutine and returns.
func (w *SweepWorker) Run() {
	ctx, cancel := context.WithCancel(context.Background())

	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.sweep(ctx)
			}
		}
	}()
}

// Stop implements [StoppableWorker].
func (w *SweepWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *SweepWorker) sweep(ctx context.Context) {
	if _, err := w.kv.Sweep(ctx); err != nil {
		w.logger.Error().Err(err).Msg("kv sweep failed")
	}

	if w.staleAge > 0 {
		if _, err := w.queue.RemoveStale(ctx, w.staleAge); err != nil {
			w.logger.Error().Err(err).Msg("stale queue eviction failed")
		}
	}
}
