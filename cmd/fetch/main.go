// One-shot fetch of all enabled series, for cron or manual backfill.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/internal/adapters/database"
	"github.com/apetrov/econ-tracker/internal/adapters/fred"
	"github.com/apetrov/econ-tracker/internal/series"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Conn(), cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	seriesRepo := series.NewRepository(db)
	trackerRepo := series.NewTrackerRepository(db)
	fredClient := fred.NewClient(&cfg.Fred)

	fetcher := series.NewFetcher(fredClient, seriesRepo, trackerRepo, nil, cfg.Fred.ObservationStart)

	result, err := fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}

	logger.Info("one-shot fetch finished",
		zap.Int("series", result.SeriesFetched),
		zap.Int("upserted", result.Upserted),
		zap.Int("failed", len(result.Failed)),
	)

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d series failed to fetch", len(result.Failed))
	}

	return nil
}
