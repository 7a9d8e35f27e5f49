package memory

import (
	"context"
	"sync"

	"scaffold/internal/eventlog"
)

// InMemoryStore keeps records in append order.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []eventlog.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, record eventlog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *InMemoryStore) ListByAggregate(_ context.Context, aggregateID string) ([]eventlog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []eventlog.Record
	for _, r := range s.records {
		if r.AggregateID == aggregateID {
			out = append(out, r)
		}
	}
	return out, nil
}
