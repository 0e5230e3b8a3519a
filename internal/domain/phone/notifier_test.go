package phone

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	appctx "phonefixtures/internal/core/context"
	"phonefixtures/pkg/logger"
)

func TestLogNotifier_WritesInfoLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(logger.NewFromZap(zap.New(core)))

	ctx := appctx.WithRun(context.Background(), &appctx.RunContext{RunID: "run-7", Provider: 700})
	n.Notify(ctx, "Done!")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Done!", entry.Message)
	assert.Equal(t, "progress", entry.ContextMap()["component"])
	assert.Equal(t, "run-7", entry.ContextMap()["run_id"])
}

func TestNotifierFunc(t *testing.T) {
	var got []string
	n := NotifierFunc(func(_ context.Context, m string) { got = append(got, m) })

	n.Notify(context.Background(), "a")
	NopNotifier{}.Notify(context.Background(), "b")

	assert.Equal(t, []string{"a"}, got)
}
