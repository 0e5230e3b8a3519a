package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrace_RoundTrip(t *testing.T) {
	trace := NewTraceContext()
	ctx := WithTrace(context.Background(), trace)

	assert.Same(t, trace, GetTrace(ctx))
	assert.Equal(t, trace.TraceID, GetTraceID(ctx))
	assert.Equal(t, trace.RequestID, GetRequestID(ctx))
	assert.Len(t, trace.SpanID, 16)
}

func TestTrace_Missing(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, GetTrace(ctx))
	assert.Empty(t, GetRequestID(ctx))
	assert.NotEmpty(t, GetTraceID(ctx), "trace id is generated when absent")
}

func TestRun_RoundTrip(t *testing.T) {
	ctx := WithRun(context.Background(), &RunContext{RunID: "run-1", Provider: 700, Start: 5, Stop: 8})

	assert.Equal(t, "run-1", GetRunID(ctx))
	assert.Equal(t, int64(700), GetRun(ctx).Provider)
	assert.Empty(t, GetRunID(context.Background()))
}
