package cqrs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"scaffold/internal/platform/metrics"
)

// Subscriber receives published events. Returning an error reports a failed
// delivery; it never affects other subscribers or the triggering command.
type Subscriber interface {
	Handle(ctx context.Context, event Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context, event Event) error

func (f SubscriberFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// FailureHandler is told about every failed delivery after it has been logged.
type FailureHandler func(ctx context.Context, subscriber string, event Event, err error)

type subscription struct {
	name string
	sub  Subscriber
}

// Bus is a synchronous in-process Publisher. Publish returns only after every
// subscriber registered at call time has been given the event, which is what
// lets the dispatcher finish publication before it returns to its caller.
type Bus struct {
	mu        sync.RWMutex
	subs      []subscription
	closed    bool
	logger    *slog.Logger
	metrics   *metrics.Bus
	onFailure FailureHandler
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithBusLogger sets the logger used to report delivery failures.
func WithBusLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBusMetrics counts deliveries and failures per subscriber.
func WithBusMetrics(m *metrics.Bus) BusOption {
	return func(b *Bus) {
		b.metrics = m
	}
}

// WithFailureHandler registers an out-of-band sink for delivery failures.
func WithFailureHandler(fn FailureHandler) BusOption {
	return func(b *Bus) {
		b.onFailure = fn
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers sub under name. Names are used only for reporting.
func (b *Bus) Subscribe(name string, sub Subscriber) error {
	if sub == nil {
		return fmt.Errorf("subscribe %q: %w", name, ErrNilHandler)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBusClosed
	}
	b.subs = append(b.subs, subscription{name: name, sub: sub})
	return nil
}

// Publish delivers event to every current subscriber. Subscriber errors and
// panics are contained and reported; Publish itself fails only when the bus
// is closed.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if err := deliver(ctx, s.sub, event); err != nil {
			b.reportFailure(ctx, s.name, event, err)
			continue
		}
		if b.metrics != nil {
			b.metrics.IncDelivered(s.name, event.EventName())
		}
	}
	return nil
}

// Close rejects further publications. Events already being delivered finish.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func deliver(ctx context.Context, sub Subscriber, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return sub.Handle(ctx, event)
}

func (b *Bus) reportFailure(ctx context.Context, name string, event Event, err error) {
	b.logger.ErrorContext(ctx, "event delivery failed",
		"subscriber", name,
		"event", event.EventName(),
		"aggregate_id", event.AggregateID(),
		"error", err,
	)
	if b.metrics != nil {
		b.metrics.IncFailed(name, event.EventName())
	}
	if b.onFailure != nil {
		b.onFailure(ctx, name, event, err)
	}
}
