// Package main is the entry point for the phonefixtures API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"phonefixtures/internal/config"
	"phonefixtures/internal/domain/phone"
	v1 "phonefixtures/internal/infrastructure/http/v1"
	"phonefixtures/internal/infrastructure/http/v1/handlers"
	"phonefixtures/internal/infrastructure/storage/memory"
	"phonefixtures/internal/infrastructure/storage/postgres"
	"phonefixtures/internal/infrastructure/storage/postgres/phone_repo"
	"phonefixtures/internal/metrics"
	"phonefixtures/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting phonefixtures server")

	// --- Store ---
	var (
		repo phone.Repository
		db   handlers.Pinger
	)
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, serving from in-memory store")
		repo = memory.NewPhoneStore()
	} else {
		poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
		poolCfg.ApplicationName = "phonefixtures-server"
		pool, err := postgres.NewPool(ctx, poolCfg)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		txm := postgres.NewTxManager(pool)
		if err := postgres.EnsureSchema(ctx, txm); err != nil {
			log.Fatalw("failed to ensure schema", "error", err)
		}
		log.Info("database connection established")

		repo = phone_repo.NewPhoneRepo(txm)
		db = pool
	}

	// --- Metrics ---
	metricsProvider, err := metrics.NewProvider()
	if err != nil {
		log.Fatalw("failed to create metrics provider", "error", err)
	}
	store, err := metrics.NewInstrumentedStore(repo, metricsProvider.MeterProvider(), cfg.MetricsNamespace)
	if err != nil {
		log.Fatalw("failed to instrument store", "error", err)
	}

	// --- Router ---
	mode := gin.ReleaseMode
	if cfg.IsDevelopment() {
		mode = gin.DebugMode
	}
	router := v1.NewRouter(v1.RouterConfig{
		Logger:  log,
		Reader:  repo,
		Store:   store,
		DB:      db,
		Metrics: metricsProvider.Handler(),
		Mode:    mode,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}
	if err := metricsProvider.Shutdown(shutdownCtx); err != nil {
		log.Warnw("failed to shut down metrics provider", "error", err)
	}

	log.Info("server stopped")
}
