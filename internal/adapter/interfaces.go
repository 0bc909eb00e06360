// Package adapter implements the outbound edge of the sync client: the
// kind-specific remote-commit handlers that push queued mutations to the
// platform HTTP API, and the connectivity probe the network monitor polls.
package adapter

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CommitHandler performs the remote commit for one sync-item kind.
// A nil error means the mutation is durably accepted server-side; any
// error feeds the item's retry path.
type CommitHandler interface {
	Commit(ctx context.Context, payload json.RawMessage) error
}

// ConnectivityProbe reports whether the remote commit endpoint is currently
// reachable. Implementations must be cheap enough to call on a short ticker.
type ConnectivityProbe interface {
	Online(ctx context.Context) bool
}
