package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when an operation runs before Load succeeds.
	ErrNotLoaded = errors.New("question set not loaded")
	// ErrWrongPhase is returned when an operation is invalid for the current phase.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
	// ErrBlankAnswer is returned for empty or whitespace-only submissions.
	ErrBlankAnswer = errors.New("blank answer")
	// ErrMalformedSet marks a set document that cannot be played.
	ErrMalformedSet = errors.New("malformed question set")
)

// SetLoadError indicates a question set could not be fetched or parsed.
type SetLoadError struct {
	SetID string
	Err   error
}

func (e *SetLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load question set %q: %v", e.SetID, e.Err)
	}
	return fmt.Sprintf("load question set %q", e.SetID)
}

func (e *SetLoadError) Unwrap() error { return e.Err }
