// Package config provides application configuration through environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// AppEnv is the deployment environment ("development", "production").
	AppEnv string
	// AppPort is the HTTP port of cmd/server.
	AppPort string

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string
	// DBMaxConns caps the pgx pool size.
	DBMaxConns int

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// Provider is the provider code used by cmd/seed.
	Provider int64
	// RangeStart is the first index synthesized (inclusive).
	RangeStart int64
	// RangeStop is the last index synthesized (exclusive).
	RangeStop int64
	// RandSeed makes country selection reproducible. 0 means unseeded.
	RandSeed uint64
	// randSeedErr is set when RAND_SEED is not a non-negative integer.
	randSeedErr error

	// FixtureFile, when set, makes cmd/seed write a zstd NDJSON file instead of Postgres.
	FixtureFile string
	// DryRun makes cmd/seed synthesize into memory only.
	DryRun bool
	// ResetProvider deletes existing rows of Provider before seeding.
	ResetProvider bool

	// MetricsNamespace prefixes exported metric names.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	loadDotEnv()

	seed, seedErr := parseSeed(env.GetString("RAND_SEED", "0"))

	return &Config{
		AppEnv:  env.GetString("APP_ENV", "development"),
		AppPort: env.GetString("APP_PORT", "8080"),

		DatabaseURL: env.GetString("DATABASE_URL", ""),
		DBMaxConns:  env.GetInt("DB_MAX_CONNS", 10),

		LogLevel: env.GetString("LOG_LEVEL", "info"),

		Provider:    int64(env.GetInt("PROVIDER", 700)),
		RangeStart:  int64(env.GetInt("RANGE_START", 0)),
		RangeStop:   int64(env.GetInt("RANGE_STOP", 1000)),
		RandSeed:    seed,
		randSeedErr: seedErr,

		FixtureFile:   env.GetString("FIXTURE_FILE", ""),
		DryRun:        env.GetBool("DRY_RUN", false),
		ResetProvider: env.GetBool("RESET_PROVIDER", false),

		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "phonefixtures"),
	}
}

// Validate reports settings that Load could not use as given. Provider and
// range indices must be non-negative; RAND_SEED must parse as uint64.
func (c *Config) Validate() error {
	var errs []error
	if c.randSeedErr != nil {
		errs = append(errs, c.randSeedErr)
	}
	if c.Provider < 0 {
		errs = append(errs, fmt.Errorf("PROVIDER must be non-negative, got %d", c.Provider))
	}
	if c.RangeStart < 0 || c.RangeStop < 0 {
		errs = append(errs, fmt.Errorf("RANGE_START and RANGE_STOP must be non-negative, got %d and %d", c.RangeStart, c.RangeStop))
	}
	return errors.Join(errs...)
}

// parseSeed parses RAND_SEED. A negative or malformed seed is an error and
// leaves the run unseeded.
func parseSeed(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("RAND_SEED must be a non-negative integer, got %q", raw)
	}
	return seed, nil
}

// IsDevelopment reports whether the logger should use development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}

// loadDotEnv searches for a .env file from the current directory up to
// the root directory and loads the first one found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
