package summarize

import (
	"fmt"
	"time"
)

// GenerationError reports a failed or empty generation call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error creating summary: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TimeoutError reports a generation call that exceeded its deadline.
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("summary generation timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
