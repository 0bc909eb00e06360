// Package http implements the HTTP transport layer of the relay server:
// the websocket upgrade route, the authenticated notify endpoints backend
// code calls to push events into rooms, and the middleware that handles
// tracing and authentication before requests reach the hub.
package http

import (
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/realtime"
)

type Handler struct {
	hub      *realtime.Hub
	verifier realtime.TokenVerifier

	logger *logger.Logger
}

func NewHandler(hub *realtime.Hub, verifier realtime.TokenVerifier, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		hub:      hub,
		verifier: verifier,
		logger:   logger,
	}
}
