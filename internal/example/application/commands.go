package application

import (
	"context"
	"time"

	"scaffold/internal/cqrs"
	"scaffold/internal/example/models"
	"scaffold/internal/example/ports"
	dErrors "scaffold/pkg/domain-errors"
	"scaffold/pkg/requestcontext"
)

// CreateExampleHandler builds a new entity and saves it. Save upserts, so a
// repeated id overwrites the stored name.
type CreateExampleHandler struct {
	examples ports.ExampleRepository
	now      func() time.Time
}

// NewCreateExampleHandler uses now for CreatedAt when set, and the
// request-scoped time otherwise.
func NewCreateExampleHandler(examples ports.ExampleRepository, now func() time.Time) *CreateExampleHandler {
	return &CreateExampleHandler{examples: examples, now: now}
}

func (h *CreateExampleHandler) Handle(ctx context.Context, cmd CreateExample) (cqrs.Outcome, error) {
	now := requestcontext.Now(ctx)
	if h.now != nil {
		now = h.now()
	}
	example, err := models.NewExample(cmd.ID, cmd.Name, now)
	if err != nil {
		return cqrs.Outcome{}, err
	}
	saved, err := h.examples.Save(ctx, example)
	if err != nil {
		return cqrs.Outcome{}, translateStoreErr(err, "save example")
	}
	// The stored copy is rehydrated and carries no events; drain the original.
	return cqrs.Done(saved, example), nil
}

// RenameExampleHandler loads, renames and saves an existing example.
type RenameExampleHandler struct {
	examples ports.ExampleRepository
}

func NewRenameExampleHandler(examples ports.ExampleRepository) *RenameExampleHandler {
	return &RenameExampleHandler{examples: examples}
}

func (h *RenameExampleHandler) Handle(ctx context.Context, cmd RenameExample) (cqrs.Outcome, error) {
	example, err := h.examples.FindByID(ctx, cmd.ID)
	if err != nil {
		return cqrs.Outcome{}, translateStoreErr(err, "load example")
	}
	if example == nil {
		return cqrs.Outcome{}, dErrors.New(dErrors.CodeNotFound, "example not found")
	}
	if err := example.Rename(cmd.Name); err != nil {
		return cqrs.Outcome{}, err
	}
	saved, err := h.examples.Save(ctx, example)
	if err != nil {
		return cqrs.Outcome{}, translateStoreErr(err, "save example")
	}
	return cqrs.Done(saved, example), nil
}

// DeleteExampleHandler removes an example by id.
type DeleteExampleHandler struct {
	examples ports.ExampleRepository
}

func NewDeleteExampleHandler(examples ports.ExampleRepository) *DeleteExampleHandler {
	return &DeleteExampleHandler{examples: examples}
}

func (h *DeleteExampleHandler) Handle(ctx context.Context, cmd DeleteExample) (cqrs.Outcome, error) {
	if err := h.examples.Delete(ctx, cmd.ID); err != nil {
		return cqrs.Outcome{}, translateStoreErr(err, "delete example")
	}
	return cqrs.Done(nil), nil
}
