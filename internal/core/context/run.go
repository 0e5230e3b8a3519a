package context

import (
	"context"
)

// RunContext identifies a single synthesis run.
type RunContext struct {
	RunID    string
	Provider int64
	Start    int64
	Stop     int64
}

type runContextKey struct{}

// WithRun adds RunContext to context.
func WithRun(ctx context.Context, run *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, run)
}

// GetRun returns RunContext from context.
func GetRun(ctx context.Context) *RunContext {
	if v, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return v
	}
	return nil
}

// GetRunID returns run ID from context or empty string.
func GetRunID(ctx context.Context) string {
	if r := GetRun(ctx); r != nil {
		return r.RunID
	}
	return ""
}
