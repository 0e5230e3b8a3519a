// Package commands contains the phonectl command implementations.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"phonefixtures/internal/domain/phone"
	"phonefixtures/internal/infrastructure/storage/memory"
	"phonefixtures/internal/infrastructure/storage/postgres"
	"phonefixtures/internal/infrastructure/storage/postgres/phone_repo"
	"phonefixtures/pkg/logger"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// StoreOptions selects the repository a command works against.
type StoreOptions struct {
	DatabaseURL string
	MaxConns    int
	DryRun      bool
}

// OpenRepository returns a memory store for dry runs and a Postgres
// repository otherwise. The returned func releases the connection pool.
func OpenRepository(ctx context.Context, opts StoreOptions, log *logger.Logger) (phone.Repository, func(), error) {
	if opts.DryRun {
		return memory.NewPhoneStore(), func() {}, nil
	}
	if opts.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("--database-url (or DATABASE_URL) is required")
	}

	poolCfg := postgres.DefaultPoolConfig(opts.DatabaseURL)
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = int32(opts.MaxConns)
	}
	poolCfg.ApplicationName = "phonectl"

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, nil, err
	}

	txm := postgres.NewTxManager(pool)
	if err := postgres.EnsureSchema(ctx, txm); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	log.Debugw("connected to database", "max_conns", poolCfg.MaxConns)

	return phone_repo.NewPhoneRepo(txm), pool.Close, nil
}

// parseIDs converts positional arguments into record ids.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid record id %q: %w", arg, err)
		}
		ids = append(ids, v)
	}
	return ids, nil
}

// writeJSONLine writes v as one line of JSON.
func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
