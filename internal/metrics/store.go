package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"phonefixtures/internal/core/apperror"
	"phonefixtures/internal/domain/phone"
)

const (
	statusSuccess   = "success"
	statusDuplicate = "duplicate"
	statusError     = "error"
)

// InstrumentedStore counts and times inserts of the wrapped store.
type InstrumentedStore struct {
	next     phone.Store
	inserts  metric.Int64Counter
	duration metric.Float64Histogram
}

// Compile-time check that InstrumentedStore implements phone.Store.
var _ phone.Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps next. namespace prefixes the metric names,
// e.g. "phonefixtures_inserts_total".
func NewInstrumentedStore(next phone.Store, meterProvider metric.MeterProvider, namespace string) (*InstrumentedStore, error) {
	meter := meterProvider.Meter(namespace)

	inserts, err := meter.Int64Counter(
		fmt.Sprintf("%s_inserts_total", namespace),
		metric.WithDescription("Phone records handed to the store, by outcome"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create insert counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_insert_duration_seconds", namespace),
		metric.WithDescription("Duration of a single store insert"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create insert histogram: %w", err)
	}

	return &InstrumentedStore{next: next, inserts: inserts, duration: duration}, nil
}

// Insert implements phone.Store.
func (s *InstrumentedStore) Insert(ctx context.Context, rec *phone.PhoneRecord) error {
	start := time.Now()
	err := s.next.Insert(ctx, rec)

	attrs := metric.WithAttributes(
		attribute.Int64("provider", rec.Components.Provider),
		attribute.String("status", insertStatus(err)),
	)
	s.inserts.Add(ctx, 1, attrs)
	s.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	return err
}

func insertStatus(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case apperror.IsDuplicate(err):
		return statusDuplicate
	default:
		return statusError
	}
}
