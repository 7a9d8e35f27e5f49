package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	t.Run("injected time wins", func(t *testing.T) {
		fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, fixed, Now(WithTime(context.Background(), fixed)))
	})

	t.Run("falls back to wall time", func(t *testing.T) {
		assert.WithinDuration(t, time.Now(), Now(context.Background()), time.Second)
	})
}
