package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"scaffold/internal/eventlog"
	"scaffold/pkg/platform/tx"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS example_events (
		id           UUID PRIMARY KEY,
		name         TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		occurred_at  TIMESTAMPTZ NOT NULL,
		recorded_at  TIMESTAMPTZ NOT NULL,
		payload      JSONB NOT NULL
	)
`

const indexDDL = `CREATE INDEX IF NOT EXISTS example_events_aggregate_idx ON example_events (aggregate_id, occurred_at)`

// Store implements eventlog.Store on the example_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the table and index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Pick(ctx, s.db)
		if _, err := exec.ExecContext(ctx, schemaDDL); err != nil {
			return fmt.Errorf("create example_events table: %w", err)
		}
		if _, err := exec.ExecContext(ctx, indexDDL); err != nil {
			return fmt.Errorf("create example_events index: %w", err)
		}
		return nil
	})
}

// Append is idempotent on the record id.
func (s *Store) Append(ctx context.Context, record eventlog.Record) error {
	query := `
		INSERT INTO example_events (id, name, aggregate_id, occurred_at, recorded_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := tx.Pick(ctx, s.db).ExecContext(ctx, query,
		record.ID,
		record.Name,
		record.AggregateID,
		record.OccurredAt,
		record.RecordedAt,
		[]byte(record.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert event record: %w", err)
	}
	return nil
}

func (s *Store) ListByAggregate(ctx context.Context, aggregateID string) ([]eventlog.Record, error) {
	query := `
		SELECT id, name, aggregate_id, occurred_at, recorded_at, payload
		FROM example_events
		WHERE aggregate_id = $1
		ORDER BY occurred_at, recorded_at
	`
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, query, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("query event records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]eventlog.Record, error) {
	var out []eventlog.Record
	for rows.Next() {
		var (
			r       eventlog.Record
			payload []byte
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.AggregateID, &r.OccurredAt, &r.RecordedAt, &payload); err != nil {
			return nil, fmt.Errorf("scan event record: %w", err)
		}
		r.OccurredAt = r.OccurredAt.UTC()
		r.RecordedAt = r.RecordedAt.UTC()
		r.Payload = payload
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event records: %w", err)
	}
	return out, nil
}
