package futureerrors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type PanicError struct {
	message    string
	stacktrace string
}

func (pe *PanicError) Error() string {
	return pe.message
}

func (pe *PanicError) Stacktrace() string {
	return pe.stacktrace
}

// Stack satisfies the interface FromError uses to carry stacks across the
// serialization boundary.
func (pe *PanicError) Stack() string {
	return pe.stacktrace
}

func NewPanicError(msg string) error {
	return &PanicError{
		message: msg,
	}
}

// FromPanic converts a recovered panic value into a PanicError, capturing the
// stack of the panicking goroutine.
func FromPanic(v any) error {
	return &PanicError{
		message:    fmt.Sprintf("panic: %v", v),
		stacktrace: stack(fmt.Errorf("%v", v)),
	}
}

func stack(err error) string {
	goerr := goerrors.New(err)
	return string(goerr.Stack())
}
