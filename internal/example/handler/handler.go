package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scaffold/internal/cqrs"
	"scaffold/internal/eventlog"
	"scaffold/internal/example/application"
	"scaffold/internal/example/models"
	"scaffold/internal/platform/middleware"
	dErrors "scaffold/pkg/domain-errors"
	"scaffold/pkg/platform/httputil"
)

const maxBodyBytes = 1 << 20

// Dispatcher is the part of the cqrs core the handler needs.
type Dispatcher interface {
	cqrs.CommandDispatcher
	cqrs.QueryDispatcher
}

// Handler serves the /examples routes by turning requests into commands and
// queries.
type Handler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	newID      func() string
	writeGuard func(http.Handler) http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithIDGenerator replaces the UUID generator used for new examples.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithWriteGuard wraps the mutating routes, typically with RequireAuth.
func WithWriteGuard(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.writeGuard = mw
	}
}

// New creates a new example Handler.
func New(dispatcher Dispatcher, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		dispatcher: dispatcher,
		logger:     logger,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the example routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/examples", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Get("/{id}/events", h.handleListEvents)

		r.Group(func(r chi.Router) {
			if h.writeGuard != nil {
				r.Use(h.writeGuard)
			}
			r.Post("/", h.handleCreate)
			r.Put("/{id}", h.handleRename)
			r.Delete("/{id}", h.handleDelete)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	example, err := cqrs.Execute[*models.Example](ctx, h.dispatcher, application.CreateExample{ID: h.newID(), Name: req.Name})
	if err != nil {
		h.fail(w, r, "create example", err)
		return
	}
	h.logger.InfoContext(ctx, "example created",
		"request_id", middleware.GetRequestID(ctx),
		"example_id", example.ID(),
		"subject", middleware.GetSubject(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, toResponse(example))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	example, err := cqrs.Ask[*models.Example](r.Context(), h.dispatcher, application.GetExample{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.fail(w, r, "get example", err)
		return
	}
	// Absent examples answer 200 with a null body.
	httputil.WriteJSON(w, http.StatusOK, toResponse(example))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	examples, err := cqrs.Ask[[]*models.Example](r.Context(), h.dispatcher, application.ListExamples{})
	if err != nil {
		h.fail(w, r, "list examples", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponses(examples))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	records, err := cqrs.Ask[[]eventlog.Record](r.Context(), h.dispatcher, application.ListExampleEvents{ID: chi.URLParam(r, "id")})
	if err != nil {
		h.fail(w, r, "list example events", err)
		return
	}
	if records == nil {
		records = []eventlog.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	example, err := cqrs.Execute[*models.Example](r.Context(), h.dispatcher, application.RenameExample{ID: chi.URLParam(r, "id"), Name: req.Name})
	if err != nil {
		h.fail(w, r, "rename example", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(example))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dispatcher.DispatchCommand(r.Context(), application.DeleteExample{ID: chi.URLParam(r, "id")}); err != nil {
		h.fail(w, r, "delete example", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (ExampleRequest, bool) {
	var req ExampleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid example request",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return ExampleRequest{}, false
	}
	return req, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	ctx := r.Context()
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+action,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, action+" rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
