// Package application holds the commands, queries and handlers of the
// example feature. Handlers are bound to a cqrs.Registry by Register.
package application

// CreateExample creates or overwrites the example with ID.
type CreateExample struct {
	ID   string
	Name string
}

func (CreateExample) CommandName() string { return "CreateExample" }

// RenameExample changes the name of an existing example.
type RenameExample struct {
	ID   string
	Name string
}

func (RenameExample) CommandName() string { return "RenameExample" }

// DeleteExample removes an example. Deleting an absent id succeeds.
type DeleteExample struct {
	ID string
}

func (DeleteExample) CommandName() string { return "DeleteExample" }

// GetExample resolves to *models.Example, nil when absent.
type GetExample struct {
	ID string
}

func (GetExample) QueryName() string { return "GetExample" }

// ListExamples resolves to []*models.Example.
type ListExamples struct{}

func (ListExamples) QueryName() string { return "ListExamples" }

// ListExampleEvents resolves to the logged events of one example, oldest first.
type ListExampleEvents struct {
	ID string
}

func (ListExampleEvents) QueryName() string { return "ListExampleEvents" }
