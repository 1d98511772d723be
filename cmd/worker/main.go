package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dvloznov/cnab-returns/internal/cnab/banks"
	"github.com/dvloznov/cnab-returns/internal/config"
	"github.com/dvloznov/cnab-returns/internal/gcsuploader"
	infraBQ "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/jobs/inmemory"
	"github.com/dvloznov/cnab-returns/internal/logger"
	"github.com/dvloznov/cnab-returns/internal/pipeline"
	"github.com/dvloznov/cnab-returns/internal/poller"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.NewWithLevel(cfg.App.LogLevel).With().Str("service", "worker").Logger()

	if err := cfg.GCP.RequireGCP(); err != nil {
		log.Fatal().Err(err).Msg("Worker needs GCP access")
	}

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background(), log))
	defer cancel()

	storage, err := gcsuploader.NewGCSStorageService(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage service")
	}
	defer storage.Close()

	repo, err := infraBQ.NewBigQueryLedgerRepository(ctx, infraBQ.Dataset{
		ProjectID: cfg.GCP.ProjectID,
		DatasetID: cfg.GCP.Dataset,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ledger repository")
	}
	defer repo.Close()

	deps := pipeline.Deps{
		Repo:        repo,
		Storage:     storage,
		Registry:    banks.Default(),
		DefaultBank: cfg.Parsing.DefaultBank,
	}

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.Worker.QueueBuffer, cfg.Worker.Count, jobStore)

	if err := jobQueue.Start(ctx, pipeline.NewJobHandler(deps, cfg.Parsing.Timeout)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	inbox := poller.New(storage, jobQueue, cfg.GCP.Bucket, cfg.GCP.InboxPrefix)
	if err := inbox.Start(ctx, cfg.Worker.PollSchedule); err != nil {
		log.Fatal().Err(err).Msg("Failed to start inbox poller")
	}

	// Pick up whatever is already waiting instead of idling until the first tick.
	if _, err := inbox.PollOnce(ctx); err != nil {
		log.Error().Err(err).Msg("Initial inbox poll failed")
	}

	log.Info().Int("workers", cfg.Worker.Count).Msg("Worker service started, waiting for return files...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := inbox.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping inbox poller")
	}

	// Stop before cancelling so in-flight files finish.
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}
	cancel()

	log.Info().Msg("Worker service exited")
}
