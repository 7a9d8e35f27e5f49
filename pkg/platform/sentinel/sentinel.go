package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Repository adapters return these
// (wrapped with %w) so application handlers can translate them into domain errors.
//
//   - ErrConflict: the store rejected the write (unique or check constraint)
//   - ErrUnavailable: store temporarily unreachable; the caller may retry
//   - ErrInvalidState: stored data cannot be rehydrated into a valid entity
//
// For validation failures on caller input use pkg/domain-errors directly.
var (
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
