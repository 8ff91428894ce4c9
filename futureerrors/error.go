package futureerrors

import (
	"encoding/json"
	"errors"
)

// Error is a serializable error representation. Failure reasons that cross an
// isolation boundary (for example, from a worker back to the dispatching
// context) are converted to this representation first, since the original
// error value may not survive serialization.
type Error struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`

	Permanent  bool   `json:"permanent,omitempty"`
	Cause      error  `json:"cause,omitempty"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

func (fe *Error) UnmarshalJSON(b []byte) error {
	type Alias Error
	a := &struct {
		Cause *Error `json:"cause,omitempty"`
		*Alias
	}{}

	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}

	*fe = *(*Error)(a.Alias)
	fe.Cause = a.Cause

	return nil
}

func (fe *Error) Error() string {
	return fe.Message
}

func (fe *Error) Unwrap() error {
	if fe == nil || fe.Cause == (*Error)(nil) {
		return nil
	}

	return fe.Cause
}

func (fe *Error) Stack() string {
	return fe.Stacktrace
}

var _ error = (*Error)(nil)

// FromError wraps the given error into a serializable error which can cross an
// isolation boundary and be restored on the other side
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	// If this is already a serializable error, just return it, do not wrap again
	if e, ok := err.(*Error); ok {
		return e
	}

	e := &Error{
		Type:    getErrorType(err),
		Message: err.Error(),
	}

	if stackTracer, ok := err.(interface{ Stack() string }); ok {
		e.Stacktrace = stackTracer.Stack()
	}

	if cause := errors.Unwrap(err); cause != nil {
		e.Cause = FromError(cause)
	}

	return e
}

// ToError attempts to convert the given serializable error back into a regular
// error. It will create concrete errors for known error types and maintain the
// Error for unknown ones
func ToError(err *Error) error {
	if err == nil {
		return nil
	}

	e := *err

	switch err.Type {
	case getErrorType(&PanicError{}):
		return &PanicError{message: e.Message, stacktrace: e.Stacktrace}

	default:
		// Keep *Error
		return &e
	}
}

// NewPermanentError marks the given error as permanent. Permanent errors are
// not retried by the retry combinator.
func NewPermanentError(err error) *Error {
	e := FromError(err)
	e.Permanent = true
	return e
}

// CanRetry returns true if the given error is retryable
func CanRetry(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return !e.Permanent
	}

	// Retry errors by default
	return true
}
