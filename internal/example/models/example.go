package models

import (
	"strings"
	"time"

	"scaffold/internal/cqrs"
	dErrors "scaffold/pkg/domain-errors"
)

// Example is the aggregate root of the example feature.
//
// Invariants:
//   - ID is non-empty and immutable
//   - Name is always a valid Name, on creation and on every rename
//   - CreatedAt is immutable after construction
//
// Pending events are transient: they are never persisted and only leave the
// entity through DrainEvents.
type Example struct {
	id        string
	name      Name
	createdAt time.Time
	pending   []cqrs.Event
}

// NewExample creates an example and buffers an ExampleCreated event.
func NewExample(id, name string, now time.Time) (*Example, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "id is required")
	}
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}

	e := &Example{id: id, name: n, createdAt: now}
	e.pending = append(e.pending, NewExampleCreated(id, n.String(), now))
	return e, nil
}

// Rehydrate rebuilds an example loaded from storage. No events are buffered.
func Rehydrate(id, name string, createdAt time.Time) (*Example, error) {
	if strings.TrimSpace(id) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "id is required")
	}
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Example{id: id, name: n, createdAt: createdAt}, nil
}

func (e *Example) ID() string           { return e.id }
func (e *Example) Name() string         { return e.name.String() }
func (e *Example) CreatedAt() time.Time { return e.createdAt }

// Rename replaces the name. On error the example is unchanged. No event is
// buffered for renames.
func (e *Example) Rename(newName string) error {
	n, err := NewName(newName)
	if err != nil {
		return err
	}
	e.name = n
	return nil
}

// DrainEvents returns the buffered events in append order and empties the buffer.
func (e *Example) DrainEvents() []cqrs.Event {
	if e == nil || len(e.pending) == 0 {
		return nil
	}
	events := e.pending
	e.pending = nil
	return events
}

// PendingEvents reports how many events are waiting to be drained.
func (e *Example) PendingEvents() int {
	if e == nil {
		return 0
	}
	return len(e.pending)
}
