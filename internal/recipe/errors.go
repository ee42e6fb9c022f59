package recipe

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedStep      = errors.New("malformed step")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownTemplate    = errors.New("unknown template")
	ErrAlreadyExists      = errors.New("already exists")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrStorageUnavailable = errors.New("template storage unavailable")
)

// StepError ties a failure to the recipe step that produced it.
type StepError struct {
	Index int    // zero-based position in the recipe
	Raw   string // the raw step text
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%q): %v", e.Index+1, e.Raw, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
