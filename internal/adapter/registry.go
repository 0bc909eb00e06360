package adapter

import "fmt"

// Registry maps sync-item kinds to their remote-commit handlers. It is
// populated once at startup and read-only afterwards, so no locking is
// needed.
type Registry struct {
	handlers map[string]CommitHandler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]CommitHandler)}
}

// Register binds kind to handler, replacing any previous binding.
func (r *Registry) Register(kind string, handler CommitHandler) {
	r.handlers[kind] = handler
}

// Lookup returns the handler for kind, or [ErrUnknownKind] when no handler
// was registered.
func (r *Registry) Lookup(kind string) (CommitHandler, error) {
	handler, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return handler, nil
}

// Kinds returns the registered kinds, for startup logging.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	return kinds
}
