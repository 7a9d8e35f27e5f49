package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "scaffold/pkg/domain-errors"
)

var now = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestNewName(t *testing.T) {
	valid := []struct {
		name string
		raw  string
		want string
	}{
		{"single character", "a", "a"},
		{"surrounding whitespace trimmed", "  Widget \t", "Widget"},
		{"exactly the limit", strings.Repeat("x", MaxNameLength), strings.Repeat("x", MaxNameLength)},
		{"limit counted after trim", " " + strings.Repeat("x", MaxNameLength) + " ", strings.Repeat("x", MaxNameLength)},
		{"multibyte characters count once", strings.Repeat("é", MaxNameLength), strings.Repeat("é", MaxNameLength)},
	}
	for _, tc := range valid {
		t.Run(tc.name, func(t *testing.T) {
			n, err := NewName(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.String())
		})
	}

	invalid := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"one over the limit", strings.Repeat("x", MaxNameLength+1)},
	}
	for _, tc := range invalid {
		t.Run(tc.name+" is rejected", func(t *testing.T) {
			_, err := NewName(tc.raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}

	t.Run("equality compares trimmed values", func(t *testing.T) {
		a, _ := NewName("Widget")
		b, _ := NewName(" Widget ")
		assert.True(t, a.Equals(b))
	})
}

func TestNewExample(t *testing.T) {
	t.Run("buffers exactly one created event", func(t *testing.T) {
		for _, name := range []string{"a", "Widget", strings.Repeat("n", MaxNameLength)} {
			e, err := NewExample("A", name, now)
			require.NoError(t, err)
			assert.Equal(t, "A", e.ID())
			assert.Equal(t, name, e.Name())
			assert.Equal(t, now, e.CreatedAt())

			events := e.DrainEvents()
			require.Len(t, events, 1)
			created, ok := events[0].(ExampleCreated)
			require.True(t, ok)
			assert.Equal(t, EventExampleCreated, created.EventName())
			assert.Equal(t, "A", created.AggregateID())
			assert.Equal(t, name, created.Name)
			assert.Equal(t, now, created.OccurredAt())
		}
	})

	t.Run("event carries the trimmed name", func(t *testing.T) {
		e, err := NewExample("A", "  Widget  ", now)
		require.NoError(t, err)
		assert.Equal(t, "Widget", e.DrainEvents()[0].(ExampleCreated).Name)
	})

	t.Run("invalid name is a validation error", func(t *testing.T) {
		for _, name := range []string{"", "  ", strings.Repeat("n", MaxNameLength+1)} {
			e, err := NewExample("B", name, now)
			assert.Nil(t, e)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "name %q", name)
		}
	})

	t.Run("empty id is a validation error", func(t *testing.T) {
		_, err := NewExample(" ", "Widget", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestRename(t *testing.T) {
	t.Run("replaces the name without buffering an event", func(t *testing.T) {
		e, err := NewExample("A", "Widget", now)
		require.NoError(t, err)
		e.DrainEvents()

		require.NoError(t, e.Rename(" Gadget "))
		assert.Equal(t, "Gadget", e.Name())
		assert.Zero(t, e.PendingEvents())
	})

	t.Run("invalid name leaves state unchanged", func(t *testing.T) {
		e, err := NewExample("A", "Widget", now)
		require.NoError(t, err)

		for _, name := range []string{"", "\t", strings.Repeat("n", MaxNameLength+1)} {
			err := e.Rename(name)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, "Widget", e.Name())
			assert.Equal(t, now, e.CreatedAt())
			assert.Equal(t, 1, e.PendingEvents())
		}
	})
}

func TestDrainEvents(t *testing.T) {
	t.Run("second drain is empty", func(t *testing.T) {
		e, err := NewExample("A", "Widget", now)
		require.NoError(t, err)

		assert.NotEmpty(t, e.DrainEvents())
		assert.Empty(t, e.DrainEvents())
	})

	t.Run("rehydrated examples have nothing to drain", func(t *testing.T) {
		e, err := Rehydrate("A", "Widget", now)
		require.NoError(t, err)
		assert.Empty(t, e.DrainEvents())
	})

	t.Run("nil example drains nothing", func(t *testing.T) {
		var e *Example
		assert.Empty(t, e.DrainEvents())
		assert.Zero(t, e.PendingEvents())
	})
}

func TestRehydrate(t *testing.T) {
	t.Run("rejects stored data that breaks invariants", func(t *testing.T) {
		_, err := Rehydrate("A", "", now)
		assert.Error(t, err)
		_, err = Rehydrate("", "Widget", now)
		assert.Error(t, err)
	})
}
