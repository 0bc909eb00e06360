package handler

import (
	"github.com/anikeenko/psysync/internal/handler/http"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/realtime"
)

// Handlers groups the transport handlers exposed by the relay server.
// Only HTTP exists today; the struct mirrors the wiring pattern used across
// the codebase so additional transports slot in without touching callers.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(hub *realtime.Hub, verifier realtime.TokenVerifier, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{
		HTTP: http.NewHandler(hub, verifier, logger),
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
