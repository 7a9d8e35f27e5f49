package testutil

import (
	"context"
	"net/http"

	"scaffold/internal/platform/middleware"
)

// WithSubject adds an authenticated subject to the request context, the way
// RequireAuth does after validating a bearer token. Empty subjects are ignored.
func WithSubject(req *http.Request, subject string) *http.Request {
	if subject == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), middleware.ContextKeySubject, subject)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
