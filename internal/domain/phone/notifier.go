package phone

import (
	"context"

	"phonefixtures/pkg/logger"
)

// Notifier receives progress messages. It is observational only.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// NopNotifier discards messages.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, string) {}

// LogNotifier writes progress messages as info-level log lines.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a notifier on top of log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("progress")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, message string) {
	n.log.WithContext(ctx).Info(message)
}
