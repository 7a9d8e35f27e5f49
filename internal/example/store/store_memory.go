package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"scaffold/internal/example/models"
)

type record struct {
	id        string
	name      string
	createdAt time.Time
}

// InMemory is a process-local repository. Entities are copied in and out so
// callers never share state with the store.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]record)}
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Example, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return rec.rehydrate()
}

// Save upserts by id. An existing record keeps its original creation time.
func (s *InMemory) Save(_ context.Context, example *models.Example) (*models.Example, error) {
	s.mu.Lock()
	rec := record{id: example.ID(), name: example.Name(), createdAt: example.CreatedAt()}
	if existing, ok := s.records[rec.id]; ok {
		rec.createdAt = existing.createdAt
	}
	s.records[rec.id] = rec
	s.mu.Unlock()
	return rec.rehydrate()
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.records, id)
	s.mu.Unlock()
	return nil
}

// FindAll returns examples ordered by creation time, then id.
func (s *InMemory) FindAll(_ context.Context) ([]*models.Example, error) {
	s.mu.RLock()
	recs := make([]record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	slices.SortFunc(recs, compareRecords)
	out := make([]*models.Example, 0, len(recs))
	for _, rec := range recs {
		e, err := rec.rehydrate()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r record) rehydrate() (*models.Example, error) {
	return models.Rehydrate(r.id, r.name, r.createdAt)
}

func compareRecords(a, b record) int {
	if c := a.createdAt.Compare(b.createdAt); c != 0 {
		return c
	}
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return 0
}
