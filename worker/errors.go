package worker

import "fmt"

type ErrInvalidTask struct {
	msg string
}

func (e *ErrInvalidTask) Error() string {
	return e.msg
}

type ErrTaskAlreadyRegistered struct {
	msg string
}

func (e *ErrTaskAlreadyRegistered) Error() string {
	return e.msg
}

// Reason classifies worker failures.
type Reason string

const (
	// ReasonTaskFailed is a failure reported by the task itself, including
	// recovered panics.
	ReasonTaskFailed Reason = "task_failed"

	// ReasonCrashed means the worker executing the task terminated without
	// reporting a result.
	ReasonCrashed Reason = "worker_crashed"

	// ReasonTerminated means the worker context was shut down while the task
	// was still outstanding.
	ReasonTerminated Reason = "worker_terminated"
)

// Error is the rejection reason of task futures. Err carries the underlying
// failure restored from its serialized representation.
type Error struct {
	Reason Reason
	TaskID string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("worker: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("worker: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}
