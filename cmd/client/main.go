package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anikeenko/psysync/internal/adapter"
	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/logger"
	"github.com/anikeenko/psysync/internal/service"
	"github.com/anikeenko/psysync/internal/store"
	"github.com/anikeenko/psysync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("psysync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	registry := adapter.NewCommitRegistry(cfg.Adapter)
	probe := adapter.NewHTTPProbe(cfg.Adapter)

	services := service.NewClientServices(storages, registry, probe, cfg.Workers, log)

	jobs := workers.NewWorkers(
		services.Monitor,
		workers.NewSweepWorker(storages.KV, services.Queue, cfg.Workers.SweepInterval, cfg.Workers.StaleAge, log),
	)
	jobs.Run()
	defer jobs.Stop()

	log.Info().Strs("kinds", registry.Kinds()).Msg("sync client started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-stop

	log.Info().Msg("sync client shutting down")
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
