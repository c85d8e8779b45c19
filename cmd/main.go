package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/clickhouse"
	"github.com/apetrov/econ-tracker/internal/adapters/config"
	"github.com/apetrov/econ-tracker/internal/adapters/database"
	"github.com/apetrov/econ-tracker/internal/adapters/fred"
	redisAdapter "github.com/apetrov/econ-tracker/internal/adapters/redis"
	"github.com/apetrov/econ-tracker/internal/adapters/telegram"
	"github.com/apetrov/econ-tracker/internal/api"
	"github.com/apetrov/econ-tracker/internal/correlation"
	"github.com/apetrov/econ-tracker/internal/dashboard"
	"github.com/apetrov/econ-tracker/internal/interpret"
	"github.com/apetrov/econ-tracker/internal/recommend"
	"github.com/apetrov/econ-tracker/internal/series"
	"github.com/apetrov/econ-tracker/internal/workers"
	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/worker"
)

const riskCheckInterval = 1 * time.Hour

func main() {
	// Setup signal handling
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
	cfg, err := initConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Economic indicator tracker starting...")

	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Optional infrastructure
	redisClient := initRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	chDB, archiveWriter := initArchive(cfg)
	if chDB != nil {
		defer chDB.Close()
	}
	if archiveWriter != nil {
		defer archiveWriter.Close()
	}

	notifier := initNotifier(cfg)

	// Repositories and services
	seriesRepo := series.NewRepository(db)
	trackerRepo := series.NewTrackerRepository(db)

	fredClient := fred.NewClient(&cfg.Fred)

	var archive series.Archive
	if archiveWriter != nil {
		archive = archiveWriter
	}
	fetcher := series.NewFetcher(fredClient, seriesRepo, trackerRepo, archive, cfg.Fred.ObservationStart)

	dashboardSvc := dashboard.NewService(seriesRepo)
	interpretSvc := interpret.NewService()
	correlationEngine := correlation.NewEngine()
	recommendEngine := recommend.NewEngine()

	// Background workers
	var lockFactory redisAdapter.LockFactory
	if redisClient != nil {
		lockFactory = redisClient.GetLockFactory()
	}

	workerGroup := worker.NewWorkerGroup(ctx)
	workerGroup.Add(workers.NewFetchWorker(fetcher, lockFactory, notifier), cfg.Fred.FetchInterval)
	workerGroup.Add(workers.NewRiskWorker(dashboardSvc, interpretSvc, correlationEngine, notifier), riskCheckInterval)
	workerGroup.Start()

	// API server
	server := api.NewServer(
		&cfg.Server,
		db,
		redisClient,
		dashboardSvc,
		interpretSvc,
		correlationEngine,
		recommendEngine,
		seriesRepo,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()
	server.SetReady(true)

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
	}

	// Graceful shutdown
	server.SetReady(false)
	workerGroup.Stop(30 * time.Second)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Warn("api server shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return nil
}

// initConfig loads configuration and initializes logger
func initConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// initDatabase initializes database connection with sqlx and runs migrations
func initDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db.Conn(), cfg.Database.MigrationsPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initRedis initializes the optional Redis client; nil when disabled or down
func initRedis(cfg *config.Config) *redisAdapter.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisClient, err := redisAdapter.New(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis not available, running without fetch lock and cache", zap.Error(err))
		return nil
	}

	if err := redisClient.Health(); err != nil {
		redisClient.Close()
		logger.Warn("Redis health check failed, running without fetch lock and cache", zap.Error(err))
		return nil
	}

	return redisClient
}

// initArchive initializes the optional ClickHouse observation archive
func initArchive(cfg *config.Config) (*database.DB, *clickhouse.ObservationBatchWriter) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	chDB, err := database.NewClickHouse(cfg.ClickHouse.GetDSN())
	if err != nil {
		logger.Warn("ClickHouse not available, archive disabled", zap.Error(err))
		return nil, nil
	}

	if err := chDB.DB().Ping(); err != nil {
		chDB.Close()
		logger.Warn("ClickHouse ping failed, archive disabled", zap.Error(err))
		return nil, nil
	}

	chRepo := clickhouse.NewRepository(chDB.DB())
	writer := clickhouse.NewObservationBatchWriter(chRepo, 1000, 10*time.Second)

	logger.Info("✅ observation archive enabled (ClickHouse)")

	return chDB, writer
}

// initNotifier initializes the optional Telegram notifier
func initNotifier(cfg *config.Config) *telegram.Notifier {
	if !cfg.Telegram.Enabled {
		return nil
	}

	templateManager, err := telegram.NewTemplateManager("")
	if err != nil {
		logger.Warn("telegram templates unavailable, alerts disabled", zap.Error(err))
		return nil
	}

	notifier, err := telegram.NewNotifier(&cfg.Telegram, templateManager)
	if err != nil {
		logger.Warn("telegram not available, alerts disabled", zap.Error(err))
		return nil
	}

	return notifier
}
