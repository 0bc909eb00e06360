package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/handler"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/realtime"
)

type server struct {
	httpServer *httpServer
	hub        *realtime.Hub
	logger     *logger.Logger
}

// NewServer assembles the relay server from its handlers and the broadcast
// hub. The hub is marked ready when the server starts and stopped during
// shutdown, so send primitives fail safe outside that window.
func NewServer(handlers *handler.Handlers, hub *realtime.Hub, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		hub:        hub,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	s.hub.Stop()
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.hub.Start()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
