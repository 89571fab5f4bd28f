package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/voxlate/voxlate/client"
	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/tui"
	"github.com/voxlate/voxlate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// bubbletea owns the terminal, so logs go to a file
	log := logger.NewFileLogger("voxlate-watcher")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	opts := []client.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(cfg.BaseURL))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, client.WithRequestTimeout(cfg.RequestTimeout))
	}
	c := client.New(opts...)

	ctx := context.Background()

	if cfg.APIKey != "" {
		if err := c.Authenticate(ctx, cfg.APIKey); err != nil {
			log.Fatal().Err(err).Msg("authentication failed")
		}
	}

	jobID := cfg.JobID
	if cfg.Create {
		job, err := c.CreateJob(ctx, models.CreateJobRequest{
			SourceLanguage: cfg.SourceLanguage,
			TargetLanguage: cfg.TargetLanguage,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("job submission failed")
		}
		log.Info().Str("job_id", job.JobID).Msg("submitted translation job")
		fmt.Printf("submitted job: %s\n", job.JobID)
		jobID = job.JobID
	}

	ui, err := tui.New(c, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	status, err := ui.Watch(ctx, jobID)
	switch {
	case errors.Is(err, tui.ErrUserQuit):
		return
	case err != nil:
		log.Error().Err(err).Msg("watching job failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("translation finished: %s\n", status)
	if status == models.JobStatusError {
		os.Exit(1)
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
