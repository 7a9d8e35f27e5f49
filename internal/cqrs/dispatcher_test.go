package cqrs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"scaffold/internal/platform/metrics"
)

type DispatcherSuite struct {
	suite.Suite
	ctx       context.Context
	publisher *recordingPublisher
	metrics   *metrics.Dispatch
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctx = context.Background()
	s.publisher = &recordingPublisher{}
	s.metrics = metrics.NewDispatch(prometheus.NewRegistry())
}

func (s *DispatcherSuite) dispatcher(register func(r *Registry)) *Dispatcher {
	r := NewRegistry()
	if register != nil {
		register(r)
	}
	routes, err := r.Build()
	s.Require().NoError(err)
	return NewDispatcher(routes, s.publisher, WithMetrics(s.metrics))
}

func (s *DispatcherSuite) TestRouting() {
	s.Run("unregistered command is unroutable regardless of payload", func() {
		d := s.dispatcher(nil)
		for _, cmd := range []Command{addNotes{}, addNotes{ID: "x", Notes: []string{"a"}}, otherCommand{}} {
			result, err := d.DispatchCommand(s.ctx, cmd)
			s.Nil(result)
			s.Require().ErrorIs(err, ErrUnroutableCommand)

			var routingErr *RoutingError
			s.Require().ErrorAs(err, &routingErr)
			s.Equal(KindCommand, routingErr.Kind)
			s.Equal(cmd.CommandName(), routingErr.Name)
		}
		s.Empty(s.publisher.events)
		s.Equal(float64(2), testutil.ToFloat64(s.metrics.Dispatched.WithLabelValues("command", "AddNotes", "unroutable")))
	})

	s.Run("unregistered query is unroutable", func() {
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, addNotesHandler()))
		})
		_, err := d.DispatchQuery(s.ctx, otherQuery{})
		s.Require().ErrorIs(err, ErrUnroutableQuery)
	})

	s.Run("nil command and query are unroutable", func() {
		d := s.dispatcher(nil)
		_, err := d.DispatchCommand(s.ctx, nil)
		s.ErrorIs(err, ErrUnroutableCommand)
		_, err = d.DispatchQuery(s.ctx, nil)
		s.ErrorIs(err, ErrUnroutableQuery)
	})

	s.Run("dispatcher without routes routes nothing", func() {
		d := NewDispatcher(nil, nil)
		_, err := d.DispatchCommand(s.ctx, addNotes{})
		s.ErrorIs(err, ErrUnroutableCommand)
	})

	s.Run("a different type reusing a registered name is unroutable", func() {
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, addNotesHandler()))
		})
		_, err := d.DispatchCommand(s.ctx, impostor{})
		s.ErrorIs(err, ErrUnroutableCommand)
		s.Equal(float64(0), testutil.ToFloat64(s.metrics.Dispatched.WithLabelValues("command", "AddNotes", "ok")))
	})

	s.Run("routing error from a nested dispatch is the handler's failure", func() {
		inner := s.dispatcher(nil)
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, CommandHandlerFunc[addNotes](func(ctx context.Context, _ addNotes) (Outcome, error) {
				_, err := inner.DispatchCommand(ctx, otherCommand{})
				return Outcome{}, err
			})))
		})

		unroutable := s.metrics.Dispatched.WithLabelValues("command", "AddNotes", "unroutable")
		before := testutil.ToFloat64(unroutable)

		_, err := d.DispatchCommand(s.ctx, addNotes{})
		s.Require().ErrorIs(err, ErrUnroutableCommand)
		s.Contains(err.Error(), "command AddNotes: ")

		var routingErr *RoutingError
		s.Require().ErrorAs(err, &routingErr)
		s.Equal("Other", routingErr.Name)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.Dispatched.WithLabelValues("command", "AddNotes", "error")))
		s.Equal(before, testutil.ToFloat64(unroutable))
	})

	s.Run("routing error from a nested query is wrapped", func() {
		inner := s.dispatcher(nil)
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterQuery(r, QueryHandlerFunc[findNotebook](func(ctx context.Context, _ findNotebook) (any, error) {
				return inner.DispatchQuery(ctx, otherQuery{})
			})))
		})

		_, err := d.DispatchQuery(s.ctx, findNotebook{})
		s.Require().ErrorIs(err, ErrUnroutableQuery)
		s.Contains(err.Error(), "query FindNotebook: ")
	})
}

type impostor struct{}

func (impostor) CommandName() string { return "AddNotes" }

func (s *DispatcherSuite) TestCommandPublication() {
	s.Run("publishes buffered events in append order after success", func() {
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, addNotesHandler()))
		})

		result, err := d.DispatchCommand(s.ctx, addNotes{ID: "nb-1", Notes: []string{"created", "renamed"}})
		s.Require().NoError(err)
		s.Equal("nb-1", result)
		s.Equal([]string{"created", "renamed"}, s.publisher.notes())
		s.Equal(float64(2), testutil.ToFloat64(s.metrics.EventsPublished.WithLabelValues("AddNotes")))
	})

	s.Run("drains touched entities in reported order", func() {
		s.publisher.events = nil
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, CommandHandlerFunc[addNotes](func(context.Context, addNotes) (Outcome, error) {
				first := &notebook{id: "a"}
				second := &notebook{id: "b"}
				second.add("b1")
				first.add("a1")
				first.add("a2")
				return Done(nil, first, nil, second), nil
			})))
		})

		_, err := d.DispatchCommand(s.ctx, addNotes{})
		s.Require().NoError(err)
		s.Equal([]string{"a1", "a2", "b1"}, s.publisher.notes())
	})

	s.Run("handler failure publishes nothing and keeps the cause", func() {
		s.publisher.events = nil
		cause := errors.New("storage down")
		nb := &notebook{id: "nb"}
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, CommandHandlerFunc[addNotes](func(context.Context, addNotes) (Outcome, error) {
				nb.add("never published")
				return Done(nil, nb), cause
			})))
		})

		result, err := d.DispatchCommand(s.ctx, addNotes{})
		s.Nil(result)
		s.Require().ErrorIs(err, cause)
		s.Contains(err.Error(), "AddNotes")
		s.Empty(s.publisher.events)
		s.Len(nb.pending, 1, "events stay buffered on failure")
	})

	s.Run("publisher failure stops the batch but not the command", func() {
		s.publisher.events = nil
		s.publisher.failAt = 2
		s.publisher.err = ErrBusClosed
		defer func() { s.publisher.err = nil }()

		nb := &notebook{id: "nb"}
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterCommand(r, CommandHandlerFunc[addNotes](func(context.Context, addNotes) (Outcome, error) {
				nb.add("first")
				nb.add("second")
				nb.add("third")
				return Done("ok", nb), nil
			})))
		})

		result, err := d.DispatchCommand(s.ctx, addNotes{})
		s.Require().NoError(err)
		s.Equal("ok", result)
		s.Equal([]string{"first"}, s.publisher.notes(), "already published events are not retracted")
		s.Empty(nb.pending, "the batch is drained before publishing")
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.PublishFailures.WithLabelValues("AddNotes")))
	})
}

func (s *DispatcherSuite) TestQueries() {
	s.Run("returns handler result without publishing", func() {
		s.publisher.events = nil
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterQuery(r, QueryHandlerFunc[findNotebook](func(_ context.Context, q findNotebook) (any, error) {
				return "found " + q.ID, nil
			})))
		})

		result, err := d.DispatchQuery(s.ctx, findNotebook{ID: "nb"})
		s.Require().NoError(err)
		s.Equal("found nb", result)
		s.Empty(s.publisher.events)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.Dispatched.WithLabelValues("query", "FindNotebook", "ok")))
	})

	s.Run("query handler error is wrapped", func() {
		cause := errors.New("boom")
		d := s.dispatcher(func(r *Registry) {
			s.Require().NoError(RegisterQuery(r, QueryHandlerFunc[findNotebook](func(context.Context, findNotebook) (any, error) {
				return nil, cause
			})))
		})
		_, err := d.DispatchQuery(s.ctx, findNotebook{})
		s.ErrorIs(err, cause)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.Dispatched.WithLabelValues("query", "FindNotebook", "error")))
	})
}

func (s *DispatcherSuite) TestTypedHelpers() {
	d := s.dispatcher(func(r *Registry) {
		s.Require().NoError(RegisterCommand(r, addNotesHandler()))
		s.Require().NoError(RegisterQuery(r, QueryHandlerFunc[findNotebook](func(_ context.Context, q findNotebook) (any, error) {
			if q.ID == "" {
				return nil, nil
			}
			return &notebook{id: q.ID}, nil
		})))
	})

	s.Run("Execute returns the typed result", func() {
		id, err := Execute[string](s.ctx, d, addNotes{ID: "nb"})
		s.Require().NoError(err)
		s.Equal("nb", id)
	})

	s.Run("Execute reports a result type mismatch", func() {
		_, err := Execute[int](s.ctx, d, addNotes{ID: "nb"})
		s.ErrorIs(err, ErrUnexpectedResult)
	})

	s.Run("Ask maps a nil result to the zero value", func() {
		nb, err := Ask[*notebook](s.ctx, d, findNotebook{})
		s.Require().NoError(err)
		s.Nil(nb)

		nb, err = Ask[*notebook](s.ctx, d, findNotebook{ID: "x"})
		s.Require().NoError(err)
		s.Equal("x", nb.id)
	})
}
