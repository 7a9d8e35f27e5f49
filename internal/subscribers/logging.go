// Package subscribers holds the event bus subscribers wired by cmd/server.
package subscribers

import (
	"context"
	"log/slog"

	"scaffold/internal/cqrs"
)

// Logger writes one structured line per published event.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Handle(ctx context.Context, event cqrs.Event) error {
	l.logger.InfoContext(ctx, "domain event published",
		"event", event.EventName(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	)
	return nil
}
