package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Dispatch holds Prometheus metrics for command and query dispatch.
type Dispatch struct {
	Duration        *prometheus.HistogramVec
	Dispatched      *prometheus.CounterVec
	EventsPublished *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
}

// NewDispatch creates and registers dispatch metrics on reg.
func NewDispatch(reg prometheus.Registerer) *Dispatch {
	factory := promauto.With(reg)
	return &Dispatch{
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scaffold_dispatch_duration_seconds",
			Help:    "Duration of command and query dispatch including event publication",
			Buckets: latencyBuckets,
		}, []string{"kind", "name"}),
		Dispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_dispatch_total",
			Help: "Total number of dispatched commands and queries by outcome",
		}, []string{"kind", "name", "outcome"}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_dispatch_events_published_total",
			Help: "Total number of domain events published after successful commands",
		}, []string{"command"}),
		PublishFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_dispatch_publish_failures_total",
			Help: "Total number of event batches cut short by a publisher failure",
		}, []string{"command"}),
	}
}

// ObserveDispatch records one dispatch. Call with time.Now() taken before the lookup.
func (m *Dispatch) ObserveDispatch(kind, name, outcome string, start time.Time) {
	m.Duration.WithLabelValues(kind, name).Observe(time.Since(start).Seconds())
	m.Dispatched.WithLabelValues(kind, name, outcome).Inc()
}

// AddEventsPublished adds n published events for command.
func (m *Dispatch) AddEventsPublished(command string, n int) {
	if n > 0 {
		m.EventsPublished.WithLabelValues(command).Add(float64(n))
	}
}

// IncPublishFailures records a publication batch that stopped early.
func (m *Dispatch) IncPublishFailures(command string) {
	m.PublishFailures.WithLabelValues(command).Inc()
}

// Bus holds metrics for event delivery to subscribers.
type Bus struct {
	Deliveries *prometheus.CounterVec
	Failures   *prometheus.CounterVec
}

// NewBus creates and registers event bus metrics on reg.
func NewBus(reg prometheus.Registerer) *Bus {
	factory := promauto.With(reg)
	return &Bus{
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_event_deliveries_total",
			Help: "Total number of successful event deliveries per subscriber",
		}, []string{"subscriber", "event"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_event_delivery_failures_total",
			Help: "Total number of failed event deliveries per subscriber",
		}, []string{"subscriber", "event"}),
	}
}

// IncDelivered records a successful delivery.
func (m *Bus) IncDelivered(subscriber, event string) {
	m.Deliveries.WithLabelValues(subscriber, event).Inc()
}

// IncFailed records a failed delivery.
func (m *Bus) IncFailed(subscriber, event string) {
	m.Failures.WithLabelValues(subscriber, event).Inc()
}

// Events counts domain events by name as they are published.
type Events struct {
	Published *prometheus.CounterVec
}

// NewEvents creates and registers the domain event counter on reg.
func NewEvents(reg prometheus.Registerer) *Events {
	return &Events{
		Published: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "scaffold_domain_events_total",
			Help: "Total number of domain events observed on the event bus",
		}, []string{"event"}),
	}
}

// IncPublished increments the counter for event.
func (m *Events) IncPublished(event string) {
	m.Published.WithLabelValues(event).Inc()
}
