package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaffold/internal/platform/config"
	"scaffold/pkg/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildMemoryApp(t *testing.T, mutate func(*config.Config)) *app {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := build(context.Background(), cfg, discardLogger(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.infra.Close() })
	return a
}

func TestBuild(t *testing.T) {
	t.Run("memory driver serves the example routes end to end", func(t *testing.T) {
		a := buildMemoryApp(t, nil)

		rr := testutil.DoRequest(a.handler, testutil.NewJSONRequest(t, http.MethodPost, "/examples", map[string]string{"name": "Widget"}))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		created := testutil.UnmarshalResponse[map[string]any](t, rr)
		id, _ := (*created)["id"].(string)
		require.NotEmpty(t, id)

		rr = testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/examples/"+id+"/events"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), "example.created")

		rr = testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), `scaffold_domain_events_total{event="example.created"} 1`)
	})

	t.Run("disabled event log answers not found", func(t *testing.T) {
		a := buildMemoryApp(t, func(c *config.Config) { c.EventLog.Enabled = false })

		rr := testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/examples/x/events"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("signing key guards write routes", func(t *testing.T) {
		a := buildMemoryApp(t, func(c *config.Config) { c.Server.JWTSigningKey = "test-signing-key" })

		rr := testutil.DoRequest(a.handler, testutil.NewJSONRequest(t, http.MethodPost, "/examples", map[string]string{"name": "Widget"}))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/examples"))
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("unreachable postgres fails startup", func(t *testing.T) {
		cfg := config.Default()
		cfg.Storage.Driver = config.DriverPostgres
		cfg.Database.Host = "127.0.0.1"
		cfg.Database.Port = 1

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := build(ctx, cfg, discardLogger(), prometheus.NewRegistry())
		assert.ErrorContains(t, err, "postgres ping failed")
	})
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second
	a := buildMemoryApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg.Server, discardLogger(), a) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
}

func TestRunRejectsUnknownFlags(t *testing.T) {
	assert.Error(t, run([]string{"--no-such-flag"}))
}
