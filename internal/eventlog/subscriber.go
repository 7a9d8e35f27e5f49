package eventlog

import (
	"context"
	"time"

	"scaffold/internal/cqrs"
)

// Subscriber appends every published event to a Store.
type Subscriber struct {
	store Store
	now   func() time.Time
}

// NewSubscriber creates a subscriber writing to store.
func NewSubscriber(store Store) *Subscriber {
	return &Subscriber{store: store, now: time.Now}
}

func (s *Subscriber) Handle(ctx context.Context, event cqrs.Event) error {
	record, err := NewRecord(event, s.now())
	if err != nil {
		return err
	}
	return s.store.Append(ctx, record)
}
