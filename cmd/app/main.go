package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gracepath/gracepath-api/internal/config"
	"github.com/gracepath/gracepath-api/internal/database"
	"github.com/gracepath/gracepath-api/internal/database/postgres"
	"github.com/gracepath/gracepath-api/internal/event"
	"github.com/gracepath/gracepath-api/internal/metrics"
	"github.com/gracepath/gracepath-api/internal/progression"
	"github.com/gracepath/gracepath-api/internal/reward"
	"github.com/gracepath/gracepath-api/internal/scheduler"
	"github.com/gracepath/gracepath-api/internal/server"
	"github.com/gracepath/gracepath-api/internal/stats"
	"github.com/gracepath/gracepath-api/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup logging
	initLogger(cfg)

	ctx := context.Background()

	// Apply database migrations if requested
	if cfg.RunMigrations {
		if err := database.Migrate(ctx, cfg.GetDBConnString()); err != nil {
			return err
		}
	}

	// Connect to the database
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// Event system: in-memory bus behind a resilient publisher with a
	// dead-letter file for events that exhaust their retries
	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), 0o755); err != nil {
		return err
	}
	eventBus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(eventBus, event.DefaultResilientConfig(cfg.DeadLetterPath))

	// Subscribe metrics collection to progression events
	eventCollector := metrics.NewEventMetricsCollector()
	if err := eventCollector.Register(eventBus); err != nil {
		return err
	}

	// XP amounts: defaults merged with optional overrides file
	xpTable, err := progression.LoadXPTable(cfg.XPTablePath)
	if err != nil {
		slog.Warn("XP table load failed, using defaults", "path", cfg.XPTablePath, "error", err)
		xpTable = progression.DefaultXPTable()
	}

	// Repositories
	progressionRepo := postgres.NewProgressionRepository(dbPool)
	rewardRepo := postgres.NewRewardRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)

	// Services
	rewardService := reward.NewService(rewardRepo)
	statsService := stats.NewService(statsRepo)
	progressionService := progression.NewService(progressionRepo, publisher, xpTable)
	progressionService.SetRewardUnlocker(rewardService)

	// Background reconcile pass repairs users whose reward unlocks lagged
	// behind a level-up (e.g. a crash between commit and unlock)
	pool := worker.NewPool(worker.DefaultWorkerCount, worker.DefaultQueueSize)
	pool.Start()
	defer pool.Stop()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.RewardReconcileInterval, reward.NewReconcileJob(rewardService))
	defer sched.Stop()

	// HTTP server
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, progressionService, rewardService, statsService)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Server forced shutdown", "error", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}
