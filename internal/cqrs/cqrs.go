// Package cqrs routes commands and queries to exactly one registered handler
// and publishes the domain events a successful command buffered on its entities.
//
// Handlers are bound once at startup through a Registry. Registry.Build
// produces an immutable Routes table that is handed to NewDispatcher; there is
// no package-level state.
package cqrs

import (
	"context"
	"time"
)

// Command is an intent to change state. CommandName must be constant per type
// and callable on the zero value, since it keys the routing table.
type Command interface {
	CommandName() string
}

// Query is an intent to read state. QueryName follows the same rules as
// CommandName.
type Query interface {
	QueryName() string
}

// Event is an immutable fact about a state change that already happened.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventSource is anything that buffers events until they are drained.
// DrainEvents must return the buffered events in append order and clear the
// buffer in the same step.
type EventSource interface {
	DrainEvents() []Event
}

// Outcome is what a command handler reports back to the dispatcher: the value
// returned to the caller and the entities whose buffered events must be
// published once the handler has succeeded.
type Outcome struct {
	Result  any
	Touched []EventSource
}

// Done builds an Outcome. Sources are drained in the order given.
func Done(result any, touched ...EventSource) Outcome {
	return Outcome{Result: result, Touched: touched}
}

// CommandHandler handles one command type.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) (Outcome, error)
}

// CommandHandlerFunc adapts a function to CommandHandler.
type CommandHandlerFunc[C Command] func(ctx context.Context, cmd C) (Outcome, error)

func (f CommandHandlerFunc[C]) Handle(ctx context.Context, cmd C) (Outcome, error) {
	return f(ctx, cmd)
}

// QueryHandler handles one query type.
type QueryHandler[Q Query] interface {
	Handle(ctx context.Context, q Q) (any, error)
}

// QueryHandlerFunc adapts a function to QueryHandler.
type QueryHandlerFunc[Q Query] func(ctx context.Context, q Q) (any, error)

func (f QueryHandlerFunc[Q]) Handle(ctx context.Context, q Q) (any, error) {
	return f(ctx, q)
}
