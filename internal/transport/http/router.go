package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scaffold/internal/platform/config"
	"scaffold/internal/platform/middleware"
	"scaffold/pkg/platform/httputil"
	"scaffold/pkg/platform/middleware/requesttime"
)

const healthCheckTimeout = 2 * time.Second

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type routerConfig struct {
	gatherer prometheus.Gatherer
	checks   map[string]HealthCheck
	features []Registrar
}

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

// WithMetricsGatherer exposes g at /metrics. Defaults to the global registry.
func WithMetricsGatherer(g prometheus.Gatherer) RouterOption {
	return func(c *routerConfig) {
		if g != nil {
			c.gatherer = g
		}
	}
}

// WithHealthCheck adds a named dependency check to /healthz.
func WithHealthCheck(name string, check HealthCheck) RouterOption {
	return func(c *routerConfig) {
		if check != nil {
			c.checks[name] = check
		}
	}
}

// WithRoutes mounts feature handlers.
func WithRoutes(features ...Registrar) RouterOption {
	return func(c *routerConfig) {
		c.features = append(c.features, features...)
	}
}

// NewRouter wires the shared middleware stack, operational endpoints and the
// feature routes.
func NewRouter(cfg config.Server, logger *slog.Logger, opts ...RouterOption) http.Handler {
	rc := &routerConfig{
		gatherer: prometheus.DefaultGatherer,
		checks:   make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(rc)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", healthHandler(rc.checks))
	r.Handle("/metrics", promhttp.HandlerFor(rc.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(requesttime.Middleware)
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}
		for _, f := range rc.features {
			f.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				if resp.Checks == nil {
					resp.Checks = make(map[string]string)
				}
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
			}
		}
		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, resp)
	}
}
