// Package ports declares the storage contract of the example feature.
// Adapters live in internal/example/store.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks ExampleReader,ExampleRepository

import (
	"context"

	"scaffold/internal/example/models"
)

// ExampleReader is the read-only side of the repository. Query handlers only
// ever receive this interface.
type ExampleReader interface {
	// FindByID returns nil, nil when no example has the id.
	FindByID(ctx context.Context, id string) (*models.Example, error)
	// FindAll returns a fresh snapshot on every call.
	FindAll(ctx context.Context) ([]*models.Example, error)
}

// ExampleWriter holds the mutating operations.
type ExampleWriter interface {
	// Save upserts by id and returns the stored form, which may differ from
	// the input where the adapter normalizes fields such as timestamp precision.
	Save(ctx context.Context, example *models.Example) (*models.Example, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

// ExampleRepository is the full port used by command handlers.
//
// Adapters signal transient failures with sentinel.ErrUnavailable and
// rejected writes with sentinel.ErrConflict, both wrapped with %w.
type ExampleRepository interface {
	ExampleReader
	ExampleWriter
}
