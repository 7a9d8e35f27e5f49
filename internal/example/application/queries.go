package application

import (
	"context"

	"scaffold/internal/eventlog"
	"scaffold/internal/example/models"
	"scaffold/internal/example/ports"
	dErrors "scaffold/pkg/domain-errors"
)

// GetExampleHandler answers GetExample. An absent example is a nil result,
// not an error.
type GetExampleHandler struct {
	examples ports.ExampleReader
}

func NewGetExampleHandler(examples ports.ExampleReader) *GetExampleHandler {
	return &GetExampleHandler{examples: examples}
}

func (h *GetExampleHandler) Handle(ctx context.Context, q GetExample) (any, error) {
	example, err := h.examples.FindByID(ctx, q.ID)
	if err != nil {
		return nil, translateStoreErr(err, "load example")
	}
	if example == nil {
		return nil, nil
	}
	return example, nil
}

// ListExamplesHandler answers ListExamples.
type ListExamplesHandler struct {
	examples ports.ExampleReader
}

func NewListExamplesHandler(examples ports.ExampleReader) *ListExamplesHandler {
	return &ListExamplesHandler{examples: examples}
}

func (h *ListExamplesHandler) Handle(ctx context.Context, _ ListExamples) (any, error) {
	examples, err := h.examples.FindAll(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "list examples")
	}
	if examples == nil {
		examples = []*models.Example{}
	}
	return examples, nil
}

// ListExampleEventsHandler answers ListExampleEvents from the event log. A
// nil store means the log is disabled.
type ListExampleEventsHandler struct {
	events eventlog.Store
}

func NewListExampleEventsHandler(events eventlog.Store) *ListExampleEventsHandler {
	return &ListExampleEventsHandler{events: events}
}

func (h *ListExampleEventsHandler) Handle(ctx context.Context, q ListExampleEvents) (any, error) {
	if h.events == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "event log is disabled")
	}
	records, err := h.events.ListByAggregate(ctx, q.ID)
	if err != nil {
		return nil, translateStoreErr(err, "list example events")
	}
	if records == nil {
		records = []eventlog.Record{}
	}
	return records, nil
}
