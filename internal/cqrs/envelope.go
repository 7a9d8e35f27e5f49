package cqrs

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the wire form of an event for subscribers that leave the
// process (broker, pub/sub, event log).
type Envelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewEnvelope marshals event into an Envelope. The payload is the event value
// itself, so its JSON tags define the payload shape.
func NewEnvelope(event Event) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event.EventName(), err)
	}
	return Envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload,
	}, nil
}

// Marshal encodes the envelope as JSON.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
