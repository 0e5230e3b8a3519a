package phone

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "phonefixtures/internal/core/context"
	"phonefixtures/internal/core/id"
	"phonefixtures/pkg/logger"
)

var tracer = otel.Tracer("phonefixtures/phone")

const (
	insertedMessagePrefix = "Inserted synthetic mobile number: "
	doneMessage           = "Done!"
)

// Synthesizer produces one record per index of a range and hands each to
// a Store, strictly in order.
type Synthesizer struct {
	store    Store
	rand     RandSource
	notifier Notifier
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand sets the source used to pick region codes.
func WithRand(r RandSource) Option {
	return func(s *Synthesizer) {
		s.rand = r
	}
}

// WithNotifier sets the progress sink.
func WithNotifier(n Notifier) Option {
	return func(s *Synthesizer) {
		s.notifier = n
	}
}

// NewSynthesizer creates a synthesizer writing to store. Without options it
// uses an entropy-seeded source and discards progress.
func NewSynthesizer(store Store, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		store:    store,
		rand:     NewRand(),
		notifier: NopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize inserts one record per i in [start, stop). A store failure
// stops the run at that index and is returned; records already inserted
// stay in the store.
//
// A RunContext already on ctx is reused, otherwise a new run ID is issued.
func (s *Synthesizer) Synthesize(ctx context.Context, provider, start, stop int64) error {
	run := &appctx.RunContext{RunID: appctx.GetRunID(ctx), Provider: provider, Start: start, Stop: stop}
	if run.RunID == "" {
		run.RunID = id.NewString()
	}
	ctx = appctx.WithRun(ctx, run)

	ctx, span := tracer.Start(ctx, "phone.synthesize",
		trace.WithAttributes(
			attribute.String("run.id", run.RunID),
			attribute.Int64("phone.provider", provider),
			attribute.Int64("range.start", start),
			attribute.Int64("range.stop", stop),
		))
	defer span.End()

	log := logger.FromContext(ctx).WithComponent("synthesizer")
	log.Infow("synthesis started", "start", start, "stop", stop)

	var inserted int64
	for i := start; i < stop; i++ {
		if err := ctx.Err(); err != nil {
			return s.fail(span, log, fmt.Errorf("synthesis interrupted at index %d: %w", i, err), inserted)
		}

		country := RegionCodes[s.rand.IntN(len(RegionCodes))]
		rec := NewRecord(country, provider, i)

		if err := s.store.Insert(ctx, rec); err != nil {
			return s.fail(span, log, fmt.Errorf("insert index %d (id %d): %w", i, rec.ID, err), inserted)
		}
		inserted++

		s.notifier.Notify(ctx, insertedMessagePrefix+rec.Display)
	}

	s.notifier.Notify(ctx, doneMessage)

	span.SetAttributes(attribute.Int64("phone.inserted", inserted))
	log.Infow("synthesis finished", "inserted", inserted)
	return nil
}

func (s *Synthesizer) fail(span trace.Span, log *logger.Logger, err error, inserted int64) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "synthesis halted")
	span.SetAttributes(attribute.Int64("phone.inserted", inserted))
	log.Warnw("synthesis halted", "inserted", inserted, "error", err)
	return err
}
