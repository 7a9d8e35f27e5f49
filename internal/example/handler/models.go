package handler

import (
	"time"

	"scaffold/internal/example/models"
)

// ExampleRequest is the body of create and rename.
type ExampleRequest struct {
	Name string `json:"name"`
}

// ExampleResponse is the wire form of an example.
type ExampleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(e *models.Example) *ExampleResponse {
	if e == nil {
		return nil
	}
	return &ExampleResponse{ID: e.ID(), Name: e.Name(), CreatedAt: e.CreatedAt().UTC()}
}

func toResponses(examples []*models.Example) []*ExampleResponse {
	out := make([]*ExampleResponse, 0, len(examples))
	for _, e := range examples {
		out = append(out, toResponse(e))
	}
	return out
}
