package models

import "time"

const EventExampleCreated = "example.created"

// ExampleCreated is buffered when an example is created. OccurredAt is the
// creation time, not the publication time.
type ExampleCreated struct {
	ExampleID string    `json:"id"`
	Name      string    `json:"name"`
	Occurred  time.Time `json:"occurred_at"`
}

func NewExampleCreated(id, name string, at time.Time) ExampleCreated {
	return ExampleCreated{ExampleID: id, Name: name, Occurred: at}
}

func (e ExampleCreated) EventName() string     { return EventExampleCreated }
func (e ExampleCreated) AggregateID() string   { return e.ExampleID }
func (e ExampleCreated) OccurredAt() time.Time { return e.Occurred }
