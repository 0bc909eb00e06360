package service

import (
	"context"
	"sync"
	"time"

	"github.com/anikeenko/psysync/internal/adapter"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/models"
)

// NetworkMonitor polls the connectivity probe and reacts to transitions:
// an offline-to-online edge triggers a processing pass, an online-to-offline
// edge notifies observers with a failed-equivalent aggregate without
// mutating any item state. On startup, if already online, one pass is
// triggered to flush anything queued while the process was down.
//
// The monitor implements workers.Worker: Run starts the polling goroutine
// and returns; Stop cancels it and blocks until it exits.
type NetworkMonitor struct {
	probe     adapter.ConnectivityProbe
	processor *Processor
	queue     *Queue
	observers *Observers
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	online bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewNetworkMonitor constructs a monitor polling probe every interval.
// An interval of zero or less defaults to 15 seconds.
func NewNetworkMonitor(probe adapter.ConnectivityProbe, processor *Processor, queue *Queue, observers *Observers, interval time.Duration, log *logger.Logger) *NetworkMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &NetworkMonitor{
		probe:     probe,
		processor: processor,
		queue:     queue,
		observers: observers,
		interval:  interval,
		logger:    log,
	}
}

// Online reports the last observed connectivity state.
func (m *NetworkMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Run implements workers.Worker. It performs the initial connectivity check
// synchronously, then polls on a ticker in a background goroutine until
// Stop is called.
func (m *NetworkMonitor) Run() {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	// Initial load: flush anything queued while the process was offline.
	if m.probe.Online(ctx) {
		m.setOnline(true)
		m.logger.Info().Msg("network monitor started online, flushing queue")
		go m.processor.ProcessQueue(ctx)
	} else {
		m.logger.Info().Msg("network monitor started offline")
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.check(ctx)
			}
		}
	}()
}

// Stop cancels the polling goroutine and waits for it to exit. Safe to call
// when the monitor is not running.
func (m *NetworkMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *NetworkMonitor) check(ctx context.Context) {
	online := m.probe.Online(ctx)

	m.mu.Lock()
	was := m.online
	m.online = online
	m.mu.Unlock()

	switch {
	case online && !was:
		m.logger.Info().Msg("connectivity restored, triggering sync pass")
		go m.processor.ProcessQueue(ctx)
	case !online && was:
		m.logger.Warn().Msg("connectivity lost, sync processing paused")
		m.notifyOffline(ctx)
	}
}

// notifyOffline reports a failed-equivalent aggregate to observers. No item
// state is mutated: processing is paused, not attempted.
func (m *NetworkMonitor) notifyOffline(ctx context.Context) {
	items, err := m.queue.Snapshot(ctx)
	if err != nil {
		m.logger.Error().Err(err).Msg("cannot snapshot queue for offline notification")
		items = nil
	}

	m.observers.Notify(StatusNotification{Status: models.StatusFailed, Items: items})
}

func (m *NetworkMonitor) setOnline(v bool) {
	m.mu.Lock()
	m.online = v
	m.mu.Unlock()
}
