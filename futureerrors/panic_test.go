package futureerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FromPanic(t *testing.T) {
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = FromPanic(r)
			}
		}()

		panic("boom")
	}()

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "panic: boom", pe.Error())
	require.NotEmpty(t, pe.Stacktrace())
}

func Test_FromPanic_StackSurvivesConversion(t *testing.T) {
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = FromPanic(r)
			}
		}()

		panic("kaboom")
	}()

	restored := ToError(FromError(err))

	var pe *PanicError
	require.ErrorAs(t, restored, &pe)
	require.Equal(t, "panic: kaboom", pe.Error())
	require.NotEmpty(t, pe.Stacktrace())
}

func Test_getErrorType_stringError(t *testing.T) {
	require.Empty(t, getErrorType(errors.New("test")))
}

func Test_getErrorType_error(t *testing.T) {
	err := FromError(errors.New("test"))

	etype := getErrorType(err)
	require.Equal(t, "Error", etype)
}

type CustomError struct {
	msg string
}

func (ce *CustomError) Error() string {
	return ce.msg
}

func Test_getErrorType_custom(t *testing.T) {
	ce := &CustomError{msg: "test"}

	etype := getErrorType(ce)
	require.Equal(t, "CustomError", etype)
}
