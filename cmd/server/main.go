package main

import (
	"fmt"

	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/handler"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/realtime"
	"github.com/anikeenko/psysync/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("psysync-relay")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	verifier := realtime.NewJWTVerifier(cfg.Auth)
	hub := realtime.NewHub(verifier, log.GetChildLogger())

	handlers, err := handler.NewHandlers(hub, verifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
