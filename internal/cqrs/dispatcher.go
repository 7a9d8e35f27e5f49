package cqrs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"scaffold/internal/platform/metrics"
)

const (
	outcomeOK         = "ok"
	outcomeError      = "error"
	outcomeUnroutable = "unroutable"
)

// Publisher delivers one event to whoever is listening.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// CommandDispatcher is the write-path surface handed to inbound adapters.
type CommandDispatcher interface {
	DispatchCommand(ctx context.Context, cmd Command) (any, error)
}

// QueryDispatcher is the read-path surface handed to inbound adapters.
type QueryDispatcher interface {
	DispatchQuery(ctx context.Context, q Query) (any, error)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

// Dispatcher routes commands and queries through an immutable Routes table.
// It is safe for concurrent use and does not serialize dispatches per entity.
type Dispatcher struct {
	routes    *Routes
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Dispatch
	tracer    trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for publication failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records dispatch latency and outcomes.
func WithMetrics(m *metrics.Dispatch) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithTracer overrides the global otel tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

// NewDispatcher creates a dispatcher over routes. A nil publisher discards events.
func NewDispatcher(routes *Routes, publisher Publisher, opts ...Option) *Dispatcher {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	d := &Dispatcher{
		routes:    routes,
		publisher: publisher,
		logger:    slog.Default(),
		tracer:    otel.Tracer("scaffold/internal/cqrs"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DispatchCommand runs the handler bound to cmd's type. On success it drains
// every touched entity in the order the handler reported them and publishes
// each event in drain order before returning. Nothing is published when the
// handler fails.
func (d *Dispatcher) DispatchCommand(ctx context.Context, cmd Command) (any, error) {
	start := time.Now()
	name := commandName(cmd)

	ctx, span := d.startSpan(ctx, KindCommand, name)
	defer span.End()

	route, ok := d.routes.command(name, cmd)
	if !ok {
		err := &RoutingError{Kind: KindCommand, Name: name, Err: ErrUnroutableCommand}
		d.finish(span, KindCommand, name, outcomeUnroutable, start, err)
		return nil, err
	}

	outcome, err := route.handle(ctx, cmd)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", KindCommand, name, err)
		d.finish(span, KindCommand, name, outcomeError, start, err)
		return nil, err
	}

	published := d.publish(ctx, name, outcome.Touched)
	span.SetAttributes(attribute.Int("cqrs.events_published", published))
	d.finish(span, KindCommand, name, outcomeOK, start, nil)
	return outcome.Result, nil
}

// DispatchQuery runs the handler bound to q's type. Queries have no
// publication step.
func (d *Dispatcher) DispatchQuery(ctx context.Context, q Query) (any, error) {
	start := time.Now()
	name := queryName(q)

	ctx, span := d.startSpan(ctx, KindQuery, name)
	defer span.End()

	route, ok := d.routes.query(name, q)
	if !ok {
		err := &RoutingError{Kind: KindQuery, Name: name, Err: ErrUnroutableQuery}
		d.finish(span, KindQuery, name, outcomeUnroutable, start, err)
		return nil, err
	}

	result, err := route.handle(ctx, q)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", KindQuery, name, err)
		d.finish(span, KindQuery, name, outcomeError, start, err)
		return nil, err
	}

	d.finish(span, KindQuery, name, outcomeOK, start, nil)
	return result, nil
}

// publish drains all sources first so a publisher failure cannot leave events
// behind on an entity, then publishes sequentially and stops at the first
// failure. Events already delivered are not retracted.
func (d *Dispatcher) publish(ctx context.Context, command string, sources []EventSource) int {
	var batch []Event
	for _, src := range sources {
		if src == nil {
			continue
		}
		batch = append(batch, src.DrainEvents()...)
	}

	published := 0
	for i, event := range batch {
		if err := d.publisher.Publish(ctx, event); err != nil {
			d.logger.ErrorContext(ctx, "event publication stopped",
				"command", command,
				"event", event.EventName(),
				"aggregate_id", event.AggregateID(),
				"published", published,
				"dropped", len(batch)-i,
				"error", err,
			)
			if d.metrics != nil {
				d.metrics.IncPublishFailures(command)
			}
			break
		}
		published++
	}

	if d.metrics != nil {
		d.metrics.AddEventsPublished(command, published)
	}
	return published
}

func (d *Dispatcher) startSpan(ctx context.Context, kind Kind, name string) (context.Context, trace.Span) {
	return d.tracer.Start(ctx, fmt.Sprintf("cqrs.%s %s", kind, name),
		trace.WithAttributes(
			attribute.String("cqrs.kind", string(kind)),
			attribute.String("cqrs.name", name),
		),
	)
}

func (d *Dispatcher) finish(span trace.Span, kind Kind, name, outcome string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	if d.metrics != nil {
		d.metrics.ObserveDispatch(string(kind), name, outcome, start)
	}
}

func commandName(cmd Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.CommandName()
}

func queryName(q Query) string {
	if q == nil {
		return "<nil>"
	}
	return q.QueryName()
}

// Execute dispatches cmd and asserts the result type.
func Execute[R any](ctx context.Context, d CommandDispatcher, cmd Command) (R, error) {
	var zero R
	result, err := d.DispatchCommand(ctx, cmd)
	if err != nil {
		return zero, err
	}
	return assertResult[R](result, commandName(cmd))
}

// Ask dispatches q and asserts the result type. A nil result yields the zero
// value of R, which lets lookups report absence as nil without an error.
func Ask[R any](ctx context.Context, d QueryDispatcher, q Query) (R, error) {
	var zero R
	result, err := d.DispatchQuery(ctx, q)
	if err != nil {
		return zero, err
	}
	return assertResult[R](result, queryName(q))
}

func assertResult[R any](result any, name string) (R, error) {
	var zero R
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("%s returned %T: %w", name, result, ErrUnexpectedResult)
	}
	return typed, nil
}
