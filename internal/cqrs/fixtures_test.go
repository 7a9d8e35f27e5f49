package cqrs

import (
	"context"
	"sync"
	"time"
)

type noteEvent struct {
	ID   string
	Note string
	At   time.Time
}

func (e noteEvent) EventName() string     { return "note.added" }
func (e noteEvent) AggregateID() string   { return e.ID }
func (e noteEvent) OccurredAt() time.Time { return e.At }

// notebook buffers one event per note, which gives the ordering tests more
// than one event per entity.
type notebook struct {
	id      string
	pending []Event
}

func (n *notebook) add(note string) {
	n.pending = append(n.pending, noteEvent{ID: n.id, Note: note, At: time.Now()})
}

func (n *notebook) DrainEvents() []Event {
	if n == nil {
		return nil
	}
	out := n.pending
	n.pending = nil
	return out
}

type addNotes struct {
	ID    string
	Notes []string
}

func (addNotes) CommandName() string { return "AddNotes" }

type otherCommand struct{}

func (otherCommand) CommandName() string { return "Other" }

type findNotebook struct{ ID string }

func (findNotebook) QueryName() string { return "FindNotebook" }

type otherQuery struct{}

func (otherQuery) QueryName() string { return "OtherQuery" }

// recordingPublisher keeps every published event and can fail on the nth call.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	failAt int
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil && len(p.events)+1 == p.failAt {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) notes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.(noteEvent).Note)
	}
	return out
}

func addNotesHandler() CommandHandlerFunc[addNotes] {
	return func(_ context.Context, cmd addNotes) (Outcome, error) {
		nb := &notebook{id: cmd.ID}
		for _, note := range cmd.Notes {
			nb.add(note)
		}
		return Done(nb.id, nb), nil
	}
}
