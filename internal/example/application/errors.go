package application

import (
	"errors"

	dErrors "scaffold/pkg/domain-errors"
	"scaffold/pkg/platform/sentinel"
)

// translateStoreErr maps infrastructure facts from the repository to coded
// errors. Coded errors pass through untouched, except that a stored row the
// domain rejects is an internal failure and never the caller's input error.
func translateStoreErr(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrInvalidState) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "stored example is invalid")
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "example storage is unavailable")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "example conflicts with stored state")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
	}
}
