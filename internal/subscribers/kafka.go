package subscribers

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"scaffold/internal/cqrs"
)

const (
	headerEventName      = "event_name"
	defaultFanoutTimeout = 5 * time.Second
)

// Producer is the part of *kgo.Client the Kafka subscriber needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher forwards events to a topic, keyed by aggregate id so events
// of one entity stay ordered within a partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
	timeout  time.Duration
}

// NewKafkaPublisher creates a publisher for topic. An empty topic uses the
// client's default produce topic.
func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, timeout: defaultFanoutTimeout}
}

func (p *KafkaPublisher) Handle(ctx context.Context, event cqrs.Event) error {
	env, err := cqrs.NewEnvelope(event)
	if err != nil {
		return err
	}
	value, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.AggregateID()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: headerEventName, Value: []byte(event.EventName())},
		},
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", event.EventName(), err)
	}
	return nil
}
