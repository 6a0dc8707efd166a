package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine.
// Use errors.Is to check: errors.Is(err, models.ErrNoActiveCollection)
var (
	ErrInvalidTimestamp    = errors.New("engine: invalid timestamp")
	ErrNoActiveCollection  = errors.New("engine: no active collection")
	ErrNoQuiz              = errors.New("engine: no quiz item to act on")
	ErrInvalidQuestionType = errors.New("engine: invalid question type")
	ErrInvalidRating       = errors.New("engine: invalid rating")
	ErrAlreadyRegistered   = errors.New("engine: collection already registered")
)

// RemoteError wraps a failure from the collection or quiz service boundary.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsRemote reports whether err originated at the remote boundary.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
