package cqrs

import (
	"errors"
	"fmt"
)

var (
	ErrUnroutableCommand = errors.New("no handler registered for command")
	ErrUnroutableQuery   = errors.New("no handler registered for query")
	ErrDuplicateHandler  = errors.New("handler already registered")
	ErrNilHandler        = errors.New("handler is nil")
	ErrRegistryFrozen    = errors.New("registry already built")
	ErrBusClosed         = errors.New("event bus closed")
	ErrUnexpectedResult  = errors.New("unexpected result type")
)

// Kind distinguishes the write path from the read path.
type Kind string

const (
	KindCommand Kind = "command"
	KindQuery   Kind = "query"
)

// RoutingError carries the command or query name that failed to register or route.
type RoutingError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}
