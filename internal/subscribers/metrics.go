package subscribers

import (
	"context"

	"scaffold/internal/cqrs"
	"scaffold/internal/platform/metrics"
)

// Counter counts published events by name.
type Counter struct {
	metrics *metrics.Events
}

func NewCounter(m *metrics.Events) *Counter {
	return &Counter{metrics: m}
}

func (c *Counter) Handle(_ context.Context, event cqrs.Event) error {
	c.metrics.IncPublished(event.EventName())
	return nil
}
