package main

import (
	"context"
	"fmt"

	"github.com/voxlate/voxlate/internal/adapter"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/handler"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/server"
	"github.com/voxlate/voxlate/internal/service"
	"github.com/voxlate/voxlate/internal/store"
	"github.com/voxlate/voxlate/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("voxlate-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	publisher, err := adapter.NewAMQPPublisher(cfg.Broker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to message broker")
	}

	var eventPublisher service.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	services := service.NewServices(storages, eventPublisher, cfg, log)

	if err := services.JobService.EnsureLegacyJob(ctx); err != nil {
		log.Fatal().Err(err).Msg("error creating startup job")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	backgroundWorkers := workers.NewWorkers(services, cfg.Workers, log)
	backgroundWorkers.Run()

	// blocks until SIGTERM/SIGINT/SIGQUIT and graceful shutdown
	srv.RunServer()

	backgroundWorkers.Stop()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("error closing broker connection")
		}
	}
	if err := storages.Close(); err != nil {
		log.Error().Err(err).Msg("error closing storages")
	}
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
