package subscribers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scaffold/internal/cqrs"
	"scaffold/pkg/platform/circuit"
)

// ErrCircuitOpen is returned instead of calling a subscriber whose breaker is open.
var ErrCircuitOpen = errors.New("circuit open")

// Guarded wraps a subscriber that talks to an external system. After a run of
// failures the breaker opens and events are dropped without waiting on the
// remote side, with one probe per cooldown.
type Guarded struct {
	next    cqrs.Subscriber
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func Guard(next cqrs.Subscriber, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Handle(ctx context.Context, event cqrs.Event) error {
	if !g.breaker.Allow() {
		return fmt.Errorf("%s: %w", g.breaker.Name(), ErrCircuitOpen)
	}

	if err := g.next.Handle(ctx, event); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "subscriber circuit opened", "subscriber", g.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "subscriber circuit closed", "subscriber", g.breaker.Name())
	}
	return nil
}
