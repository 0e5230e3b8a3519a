// Package main provides phonectl, a command-line tool for synthetic mobile
// number fixtures.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"phonefixtures/cmd/phonectl/commands"
	"phonefixtures/internal/config"
	"phonefixtures/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	dbFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "database-url",
			Value: cfg.DatabaseURL,
			Usage: "Postgres connection string (defaults to DATABASE_URL)",
		},
		&cli.IntFlag{
			Name:  "max-conns",
			Value: cfg.DBMaxConns,
			Usage: "Connection pool size",
		},
	}

	storeOptions := func(cmd *cli.Command) commands.StoreOptions {
		return commands.StoreOptions{
			DatabaseURL: cmd.String("database-url"),
			MaxConns:    cmd.Int("max-conns"),
			DryRun:      cmd.Bool("dry-run"),
		}
	}

	cmd := &cli.Command{
		Name:    "phonectl",
		Usage:   "Synthesize and inspect mobile number fixtures",
		Version: "1.0.0",
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return logger.WithLogger(ctx, log), nil
		},
		Commands: []*cli.Command{
			{
				Name:  "synthesize",
				Usage: "Insert one synthetic record per index of [start, stop)",
				Flags: append([]cli.Flag{
					&cli.Int64Flag{Name: "provider", Aliases: []string{"p"}, Value: cfg.Provider, Usage: "Provider code"},
					&cli.Int64Flag{Name: "start", Value: cfg.RangeStart, Usage: "First index (inclusive)"},
					&cli.Int64Flag{Name: "stop", Value: cfg.RangeStop, Usage: "Last index (exclusive)"},
					&cli.Uint64Flag{Name: "seed", Value: cfg.RandSeed, Usage: "Random seed, 0 for unseeded"},
					&cli.BoolFlag{Name: "dry-run", Value: cfg.DryRun, Usage: "Keep records in memory only"},
				}, dbFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					repo, closeRepo, err := commands.OpenRepository(ctx, storeOptions(cmd), log)
					if err != nil {
						return err
					}
					defer closeRepo()

					return commands.RunSynthesize(ctx, repo, log, commands.DefaultIO(), commands.SynthesizeOptions{
						Provider: cmd.Int64("provider"),
						Start:    cmd.Int64("start"),
						Stop:     cmd.Int64("stop"),
						Seed:     cmd.Uint64("seed"),
					})
				},
			},
			{
				Name:      "digits",
				Usage:     "Print the sorted distinct digits of each value",
				ArgsUsage: "[value...]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDigits(commands.DefaultIO(), cmd.Args().Slice())
				},
			},
			{
				Name:      "fingerprint",
				Usage:     "Print the digit fingerprint of stored records",
				ArgsUsage: "<id...>",
				Flags:     dbFlags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("at least one record id is required")
					}
					repo, closeRepo, err := commands.OpenRepository(ctx, storeOptions(cmd), log)
					if err != nil {
						return err
					}
					defer closeRepo()

					return commands.RunFingerprint(ctx, repo, commands.DefaultIO(), cmd.Args().Slice())
				},
			},
			{
				Name:  "export",
				Usage: "Export stored records to a zstd-compressed NDJSON fixture file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "Output file path"},
					&cli.StringFlag{Name: "where", Aliases: []string{"w"}, Usage: "CEL filter, e.g. 'country == 254 && number < 100'"},
					&cli.Int64Flag{Name: "provider", Aliases: []string{"p"}, Value: -1, Usage: "Only export this provider (-1 for all)"},
					&cli.IntFlag{Name: "page-size", Value: 1000, Usage: "Records read per query"},
				}, dbFlags...),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					repo, closeRepo, err := commands.OpenRepository(ctx, storeOptions(cmd), log)
					if err != nil {
						return err
					}
					defer closeRepo()

					var provider *int64
					if p := cmd.Int64("provider"); p >= 0 {
						provider = &p
					}

					return commands.RunExport(ctx, repo, log, commands.ExportOptions{
						Path:     cmd.String("out"),
						Where:    cmd.String("where"),
						Provider: provider,
						PageSize: cmd.Int("page-size"),
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Errorw("command failed", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
}
