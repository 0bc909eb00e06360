package service

import (
	"sync"

	"github.com/anikeenko/psysync/models"
)

// StatusNotification is the aggregate result delivered to observers once per
// processing pass (or on an offline transition, with Status failed and no
// item mutated).
type StatusNotification struct {
	// Status is the aggregate outcome: StatusCompleted when every item
	// touched by the pass succeeded, StatusFailed otherwise.
	Status models.SyncStatus

	// Items is the full queue snapshot taken after the pass.
	Items []models.SyncItem
}

// StatusObserver receives aggregate status notifications.
type StatusObserver func(StatusNotification)

// ObserverHandle identifies a registered observer for later removal.
type ObserverHandle int64

// Observers is the registration interface for sync status subscribers.
// Multiple independent subscribers can be added and removed concurrently.
type Observers struct {
	mu   sync.RWMutex
	next ObserverHandle
	subs map[ObserverHandle]StatusObserver
}

func NewObservers() *Observers {
	return &Observers{subs: make(map[ObserverHandle]StatusObserver)}
}

// Register adds an observer and returns its handle.
func (o *Observers) Register(fn StatusObserver) ObserverHandle {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.next++
	handle := o.next
	o.subs[handle] = fn
	return handle
}

// Unregister removes the observer registered under handle. Unknown handles
// are ignored.
func (o *Observers) Unregister(handle ObserverHandle) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.subs, handle)
}

// Notify delivers the notification to every registered observer,
// synchronously and in unspecified order.
func (o *Observers) Notify(n StatusNotification) {
	o.mu.RLock()
	subs := make([]StatusObserver, 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.RUnlock()

	for _, fn := range subs {
		fn(n)
	}
}
