// Package main provides a CLI tool for seeding a store with synthetic mobile numbers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"phonefixtures/internal/config"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/fixturefile"
	"phonefixtures/internal/infrastructure/storage/memory"
	"phonefixtures/internal/infrastructure/storage/postgres"
	"phonefixtures/internal/infrastructure/storage/postgres/phone_repo"
	"phonefixtures/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "error", err)
	}

	synth := phone.NewSynthesizer(store,
		phone.WithRand(phone.RandFromSeed(cfg.RandSeed)),
		phone.WithNotifier(phone.NewLogNotifier(log)),
	)

	runErr := synth.Synthesize(ctx, cfg.Provider, cfg.RangeStart, cfg.RangeStop)
	if err := closeStore(); err != nil {
		log.Errorw("failed to close store", "error", err)
	}
	if runErr != nil {
		log.Fatalw("seeding failed", "error", runErr)
	}

	log.Info("seeding completed successfully")
}

// openStore picks the seeding target: memory for dry runs, a fixture file
// when FIXTURE_FILE is set, Postgres otherwise.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (phone.Store, func() error, error) {
	switch {
	case cfg.DryRun:
		log.Info("dry run: records are kept in memory")
		return memory.NewPhoneStore(), func() error { return nil }, nil

	case cfg.FixtureFile != "":
		w, err := fixturefile.Create(cfg.FixtureFile)
		if err != nil {
			return nil, nil, err
		}
		log.Infow("writing fixture file", "path", cfg.FixtureFile)
		return w, func() error {
			log.Infow("fixture file closed", "path", cfg.FixtureFile, "records", w.Count())
			return w.Close()
		}, nil
	}

	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required unless DRY_RUN or FIXTURE_FILE is set")
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.ApplicationName = "phonefixtures-seed"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	if err := postgres.EnsureSchema(ctx, txm); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}

	repo := phone_repo.NewPhoneRepo(txm)
	if cfg.ResetProvider {
		deleted, err := repo.Purge(ctx, cfg.Provider)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("reset provider %d: %w", cfg.Provider, err)
		}
		log.Infow("provider reset", "provider", cfg.Provider, "deleted", deleted)
	}

	return repo, func() error {
		postgres.LogPoolStats(ctx, pool.Pool)
		pool.Close()
		return nil
	}, nil
}
