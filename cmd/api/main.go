package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/cnab-returns/internal/api"
	"github.com/dvloznov/cnab-returns/internal/cnab/banks"
	"github.com/dvloznov/cnab-returns/internal/config"
	"github.com/dvloznov/cnab-returns/internal/gcsuploader"
	infraBQ "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/jobs/inmemory"
	"github.com/dvloznov/cnab-returns/internal/logger"
	"github.com/dvloznov/cnab-returns/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.NewWithLevel(cfg.App.LogLevel).With().Str("service", "api").Logger()
	ctx := logger.WithContext(context.Background(), log)

	registry := banks.Default()
	deps := api.Deps{
		Registry:       registry,
		DefaultBank:    cfg.Parsing.DefaultBank,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		Log:            log,
	}

	// Without GCP settings the server still parses files; ledger and
	// ingestion endpoints answer 503.
	var jobQueue *inmemory.Queue
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := cfg.GCP.RequireGCP(); err != nil {
		log.Warn().Err(err).Msg("GCP not configured - ledger and ingestion endpoints disabled")
	} else {
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

		jobStore := inmemory.NewStore()
		jobQueue = inmemory.NewQueue(cfg.Worker.QueueBuffer, cfg.Worker.Count, jobStore)

		handler := pipeline.NewJobHandler(pipeline.Deps{
			Repo:        repo,
			Storage:     storage,
			Registry:    registry,
			DefaultBank: cfg.Parsing.DefaultBank,
		}, cfg.Parsing.Timeout)

		if err := jobQueue.Start(workerCtx, handler); err != nil {
			log.Fatal().Err(err).Msg("Failed to start job worker")
		}

		deps.Repo = repo
		deps.Publisher = jobQueue
		deps.Jobs = jobStore
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Address(),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if jobQueue != nil {
		if err := jobQueue.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping job queue")
		}
	}
	cancelWorker()

	log.Info().Msg("Server exited")
}
