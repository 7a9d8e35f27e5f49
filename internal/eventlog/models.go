// Package eventlog keeps a queryable history of published domain events.
//
// The log is fed by a bus subscriber and is best effort: a failed append is
// reported by the bus and never rolls back the command that raised the event.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scaffold/internal/cqrs"
)

// Record is one logged event.
type Record struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	RecordedAt  time.Time       `json:"recorded_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewRecord captures event with a fresh id.
func NewRecord(event cqrs.Event, recordedAt time.Time) (Record, error) {
	env, err := cqrs.NewEnvelope(event)
	if err != nil {
		return Record{}, fmt.Errorf("build event log record: %w", err)
	}
	return Record{
		ID:          uuid.New(),
		Name:        env.Name,
		AggregateID: env.AggregateID,
		OccurredAt:  env.OccurredAt,
		RecordedAt:  recordedAt.UTC(),
		Payload:     env.Payload,
	}, nil
}

// Store persists records.
type Store interface {
	Append(ctx context.Context, record Record) error
	// ListByAggregate returns records for one aggregate, oldest first.
	ListByAggregate(ctx context.Context, aggregateID string) ([]Record, error)
}
