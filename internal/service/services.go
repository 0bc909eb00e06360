package service

import (
	"context"

	"github.com/anikeenko/psysync/internal/adapter"
	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/store"
)

// ClientServices wires the resilience core together: queue, processor,
// observer registry, and network monitor, with the opportunistic enqueue
// kick installed.
type ClientServices struct {
	// Queue is the durable sync queue exposed to mutation producers.
	Queue *Queue

	// Processor drives the retry state machine; exported so explicit
	// triggers (beyond the network monitor) can request a pass.
	Processor *Processor

	// Observers is the status-change subscription registry.
	Observers *Observers

	// Monitor is the connectivity watcher that owns pass triggering.
	Monitor *NetworkMonitor
}

// NewClientServices constructs and wires all client-side services.
//
// The enqueue kick only fires while the monitor reports online; when
// offline the item simply waits for the next connectivity edge, which is
// the authoritative trigger.
func NewClientServices(storages *store.ClientStorages, registry *adapter.Registry, probe adapter.ConnectivityProbe, cfg config.ClientWorkers, log *logger.Logger) *ClientServices {
	observers := NewObservers()
	queue := NewQueue(storages.Queue, log.GetChildLogger())
	processor := NewProcessor(queue, registry, observers, log.GetChildLogger())
	monitor := NewNetworkMonitor(probe, processor, queue, observers, cfg.ProbeInterval, log.GetChildLogger())

	queue.SetKick(func() {
		if monitor.Online() {
			go processor.ProcessQueue(context.Background())
		}
	})

	return &ClientServices{
		Queue:     queue,
		Processor: processor,
		Observers: observers,
		Monitor:   monitor,
	}
}
