package application

import (
	"errors"
	"time"

	"scaffold/internal/cqrs"
	"scaffold/internal/eventlog"
	"scaffold/internal/example/ports"
)

// Deps are the collaborators of the example handlers.
type Deps struct {
	Examples ports.ExampleRepository
	// Events backs ListExampleEvents. Nil disables the query's data.
	Events eventlog.Store
	// Now stamps new examples. Nil uses the request time from the context.
	Now func() time.Time
}

// Register binds every example command and query to r.
func Register(r *cqrs.Registry, deps Deps) error {
	if deps.Examples == nil {
		return errors.New("example repository is required")
	}
	return errors.Join(
		cqrs.RegisterCommand[CreateExample](r, NewCreateExampleHandler(deps.Examples, deps.Now)),
		cqrs.RegisterCommand[RenameExample](r, NewRenameExampleHandler(deps.Examples)),
		cqrs.RegisterCommand[DeleteExample](r, NewDeleteExampleHandler(deps.Examples)),
		cqrs.RegisterQuery[GetExample](r, NewGetExampleHandler(deps.Examples)),
		cqrs.RegisterQuery[ListExamples](r, NewListExamplesHandler(deps.Examples)),
		cqrs.RegisterQuery[ListExampleEvents](r, NewListExampleEventsHandler(deps.Events)),
	)
}
