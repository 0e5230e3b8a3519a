package commands

import (
	"context"
	"fmt"

	appctx "phonefixtures/internal/core/context"
	"phonefixtures/internal/core/id"
	"phonefixtures/internal/domain/phone"
	"phonefixtures/pkg/logger"
)

// SynthesizeOptions are the inputs of the synthesize command.
type SynthesizeOptions struct {
	Provider int64
	Start    int64
	Stop     int64
	Seed     uint64
}

// RunSynthesize inserts one record per index of [Start, Stop) and echoes
// every progress message to stdio.Writer.
func RunSynthesize(
	ctx context.Context,
	store phone.Store,
	log *logger.Logger,
	stdio IOTuple,
	opts SynthesizeOptions,
) error {
	runID := id.NewString()
	ctx = appctx.WithRun(ctx, &appctx.RunContext{RunID: runID})

	log.Infow("synthesizing",
		"run_id", runID,
		"provider", opts.Provider,
		"start", opts.Start,
		"stop", opts.Stop,
	)

	counter := phone.NewCountingStore(store)
	synth := phone.NewSynthesizer(counter,
		phone.WithRand(phone.RandFromSeed(opts.Seed)),
		phone.WithNotifier(phone.NotifierFunc(func(_ context.Context, message string) {
			_, _ = fmt.Fprintln(stdio.Writer, message)
		})),
	)

	if err := synth.Synthesize(ctx, opts.Provider, opts.Start, opts.Stop); err != nil {
		return fmt.Errorf("synthesize (run %s, %d inserted): %w", runID, counter.Count(), err)
	}

	log.Infow("synthesis complete", "run_id", runID, "inserted", counter.Count())
	return nil
}
