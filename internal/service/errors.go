package service

import "errors"

var (
	// ErrItemNotFound is returned by queue lookups for ids that were never
	// enqueued or have already been pruned.
	ErrItemNotFound = errors.New("sync item not found")

	// ErrItemNotRetryable is returned by [Queue.Retry] when the target item
	// is not in the failed state.
	ErrItemNotRetryable = errors.New("sync item is not in failed state")
)
