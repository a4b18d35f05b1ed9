package scoring

import (
	"errors"
	"fmt"
)

// ErrScoringUnavailable reports that the embedding backend could not serve a
// request. It is never returned for a poor answer; callers should retry or
// fail the job rather than record zero scores.
var ErrScoringUnavailable = errors.New("scoring backend unavailable")

// BackendError carries the failing backend call.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrScoringUnavailable, e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrScoringUnavailable }

// unavailable wraps err for backend, leaving an existing BackendError as is
// so nested backends report the innermost failure once.
func unavailable(backend, op string, err error) error {
	var be *BackendError
	if errors.As(err, &be) {
		return err
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
