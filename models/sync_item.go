package models

import (
	"encoding/json"
	"time"
)

// SyncStatus is the lifecycle state of a queued client mutation.
//
// The only legal transitions are driven by the sync processor:
//
//	StatusPending -> StatusInProgress -> StatusCompleted
//	StatusPending -> StatusInProgress -> StatusFailed
//
// A StatusFailed item returns to the attempt pool on the next processing
// pass without an explicit transition back to pending. StatusCompleted is
// terminal: completed items are pruned, never reused.
type SyncStatus string

const (
	// StatusPending marks an item that has been enqueued but never attempted.
	StatusPending SyncStatus = "pending"

	// StatusInProgress marks an item whose remote commit is currently in flight.
	StatusInProgress SyncStatus = "in_progress"

	// StatusCompleted marks an item whose remote commit succeeded.
	StatusCompleted SyncStatus = "completed"

	// StatusFailed marks an item whose last remote commit attempt failed.
	// Failed items are retried on the next processing pass.
	StatusFailed SyncStatus = "failed"
)

// Terminal reports whether the status is an end state of a single attempt.
func (s SyncStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// SyncItem is one durable, retryable client-side mutation awaiting a remote
// commit. Items are created by the queue manager at enqueue time and mutated
// only by the sync processor afterwards.
type SyncItem struct {
	// ID is an opaque unique identifier assigned at enqueue time,
	// stable for the item's lifetime.
	ID string `json:"id"`

	// Kind selects the remote-commit handler that applies this mutation
	// (e.g. "test-result", "user-preference"). An unknown kind is a
	// configuration error, not a retryable runtime failure.
	Kind string `json:"kind"`

	// Payload is the handler-specific mutation body, kept opaque by the
	// queue and forwarded verbatim to the remote endpoint.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt orders the queue and drives stale-item eviction.
	CreatedAt time.Time `json:"created_at"`

	// Status is the current lifecycle state, see SyncStatus.
	Status SyncStatus `json:"status"`

	// RetryCount is incremented on every failed commit attempt.
	RetryCount int `json:"retry_count"`

	// LastError holds a human-readable failure reason; set only while
	// Status is StatusFailed.
	LastError string `json:"last_error,omitempty"`
}
