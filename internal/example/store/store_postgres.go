package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scaffold/internal/example/models"
	"scaffold/pkg/platform/tx"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS examples (
		id         TEXT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

const indexDDL = `CREATE INDEX IF NOT EXISTS examples_created_at_idx ON examples (created_at, id)`

// PostgresStore persists examples in the examples table. Calls join a
// transaction carried in the context (see pkg/platform/tx).
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPostgresClock overrides the clock used for updated_at.
func WithPostgresClock(now func() time.Time) PostgresOption {
	return func(s *PostgresStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema creates the examples table and its index when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Pick(ctx, s.db)
		if _, err := exec.ExecContext(ctx, schemaDDL); err != nil {
			return translatePostgres("create examples table", err)
		}
		if _, err := exec.ExecContext(ctx, indexDDL); err != nil {
			return translatePostgres("create examples index", err)
		}
		return nil
	})
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Example, error) {
	query := `SELECT id, name, created_at FROM examples WHERE id = $1`

	var (
		rowID, name string
		createdAt   time.Time
	)
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, query, id).Scan(&rowID, &name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translatePostgres("find example", err)
	}
	return rehydrateRow(rowID, name, createdAt)
}

// Save upserts by id. On conflict only the name and updated_at change, so the
// stored creation time always wins. The returned example reflects the row as
// stored, including timestamp precision.
func (s *PostgresStore) Save(ctx context.Context, example *models.Example) (*models.Example, error) {
	query := `
		INSERT INTO examples (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
		RETURNING id, name, created_at
	`

	var (
		rowID, name string
		createdAt   time.Time
	)
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, query,
		example.ID(),
		example.Name(),
		example.CreatedAt(),
		s.now(),
	).Scan(&rowID, &name, &createdAt)
	if err != nil {
		return nil, translatePostgres("save example", err)
	}
	return rehydrateRow(rowID, name, createdAt)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM examples WHERE id = $1`
	if _, err := tx.Pick(ctx, s.db).ExecContext(ctx, query, id); err != nil {
		return translatePostgres("delete example", err)
	}
	return nil
}

// FindAll returns examples ordered by created_at, then id.
func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Example, error) {
	query := `SELECT id, name, created_at FROM examples ORDER BY created_at, id`

	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, translatePostgres("list examples", err)
	}
	defer rows.Close()

	var out []*models.Example
	for rows.Next() {
		var (
			id, name  string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt); err != nil {
			return nil, translatePostgres("scan example", err)
		}
		e, err := rehydrateRow(id, name, createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePostgres("iterate examples", err)
	}
	return out, nil
}

func rehydrateRow(id, name string, createdAt time.Time) (*models.Example, error) {
	e, err := models.Rehydrate(id, name, createdAt.UTC())
	if err != nil {
		return nil, invalidRow(id, err)
	}
	return e, nil
}
