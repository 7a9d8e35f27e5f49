package cqrs

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// commandRoute pairs a handler with the concrete type it was registered for.
// accepts rejects other types that reuse the registered name.
type commandRoute struct {
	accepts func(Command) bool
	handle  func(ctx context.Context, cmd Command) (Outcome, error)
}

type queryRoute struct {
	accepts func(Query) bool
	handle  func(ctx context.Context, q Query) (any, error)
}

// Registry collects handler bindings during startup. It is not a dispatcher:
// call Build once every handler is registered and pass the resulting Routes to
// NewDispatcher.
type Registry struct {
	mu       sync.Mutex
	commands map[string]commandRoute
	queries  map[string]queryRoute
	errs     []error
	routes   *Routes
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commandRoute),
		queries:  make(map[string]queryRoute),
	}
}

// RegisterCommand binds h to the command type C. Registration problems are
// returned and also remembered so Build fails even if the caller ignores them.
func RegisterCommand[C Command](r *Registry, h CommandHandler[C]) error {
	var zero C
	name := zero.CommandName()
	if h == nil {
		return r.fail(&RoutingError{Kind: KindCommand, Name: name, Err: ErrNilHandler})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routes != nil {
		return &RoutingError{Kind: KindCommand, Name: name, Err: ErrRegistryFrozen}
	}
	if _, exists := r.commands[name]; exists {
		err := &RoutingError{Kind: KindCommand, Name: name, Err: ErrDuplicateHandler}
		r.errs = append(r.errs, err)
		return err
	}
	r.commands[name] = commandRoute{
		accepts: func(cmd Command) bool {
			_, ok := cmd.(C)
			return ok
		},
		handle: func(ctx context.Context, cmd Command) (Outcome, error) {
			return h.Handle(ctx, cmd.(C))
		},
	}
	return nil
}

// RegisterQuery binds h to the query type Q.
func RegisterQuery[Q Query](r *Registry, h QueryHandler[Q]) error {
	var zero Q
	name := zero.QueryName()
	if h == nil {
		return r.fail(&RoutingError{Kind: KindQuery, Name: name, Err: ErrNilHandler})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routes != nil {
		return &RoutingError{Kind: KindQuery, Name: name, Err: ErrRegistryFrozen}
	}
	if _, exists := r.queries[name]; exists {
		err := &RoutingError{Kind: KindQuery, Name: name, Err: ErrDuplicateHandler}
		r.errs = append(r.errs, err)
		return err
	}
	r.queries[name] = queryRoute{
		accepts: func(q Query) bool {
			_, ok := q.(Q)
			return ok
		},
		handle: func(ctx context.Context, q Query) (any, error) {
			return h.Handle(ctx, q.(Q))
		},
	}
	return nil
}

func (r *Registry) fail(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	return err
}

// Build freezes the registry and returns the routing table. Any registration
// error recorded so far is returned joined, and no routes are produced.
func (r *Registry) Build() (*Routes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}
	if r.routes != nil {
		return r.routes, nil
	}

	routes := &Routes{
		commands: make(map[string]commandRoute, len(r.commands)),
		queries:  make(map[string]queryRoute, len(r.queries)),
	}
	for name, route := range r.commands {
		routes.commands[name] = route
	}
	for name, route := range r.queries {
		routes.queries[name] = route
	}
	r.routes = routes
	return routes, nil
}

// Routes is the immutable routing table produced by Registry.Build.
type Routes struct {
	commands map[string]commandRoute
	queries  map[string]queryRoute
}

// Commands lists the registered command names in sorted order.
func (r *Routes) Commands() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Queries lists the registered query names in sorted order.
func (r *Routes) Queries() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.queries))
	for name := range r.queries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// command finds the route for cmd. A different type reusing a registered
// name is not routable.
func (r *Routes) command(name string, cmd Command) (commandRoute, bool) {
	if r == nil {
		return commandRoute{}, false
	}
	route, ok := r.commands[name]
	if !ok || !route.accepts(cmd) {
		return commandRoute{}, false
	}
	return route, true
}

func (r *Routes) query(name string, q Query) (queryRoute, bool) {
	if r == nil {
		return queryRoute{}, false
	}
	route, ok := r.queries[name]
	if !ok || !route.accepts(q) {
		return queryRoute{}, false
	}
	return route, true
}
