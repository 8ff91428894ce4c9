package future

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoCandidates is the rejection reason of Any with no input futures.
var ErrNoCandidates = errors.New("no candidate futures")

// Break signals early termination of Sequence without counting as failure.
var Break = errors.New("sequence break")

// TimeoutError is the rejection reason of a Timeout whose timer fired before
// the wrapped Future settled. It is a distinct kind so callers can tell
// "timed out" from "the operation itself failed".
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v", e.After)
}

// ExhaustedError is the rejection reason of Retry once all attempts failed.
// It carries the last underlying failure.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempt(s): %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}
