package future

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/corebase/go-futures/futureerrors"
	"github.com/stretchr/testify/require"
)

func Test_Retry_SucceedsOnFirstAttempt(t *testing.T) {
	ex := NewExecutor()

	invocations := 0
	result := Retry(ex, func(attempt int) *Future[int] {
		invocations++
		return Resolved(ex, 42)
	}, 3, backoff.NewConstantBackOff(10*time.Millisecond))

	var got int
	result.Done(func(v int) { got = v }, nil)

	ex.RunUntilIdle()

	require.Equal(t, 42, got)
	require.Equal(t, 1, invocations)
}

func Test_Retry_SucceedsAfterFailures(t *testing.T) {
	mock := clock.NewMock()
	ex := NewExecutor(WithClock(mock))

	invocations := 0
	result := Retry(ex, func(attempt int) *Future[int] {
		invocations++
		require.Equal(t, invocations, attempt)

		if attempt < 3 {
			return Failed[int](ex, errors.New("transient"))
		}
		return Resolved(ex, attempt)
	}, 3, backoff.NewConstantBackOff(10*time.Millisecond))

	var got int
	result.Done(func(v int) { got = v }, func(error) {})

	ex.RunUntilIdle()
	require.Equal(t, 1, invocations)

	mock.Add(10 * time.Millisecond)
	ex.RunUntilIdle()
	require.Equal(t, 2, invocations)

	mock.Add(10 * time.Millisecond)
	ex.RunUntilIdle()

	require.Equal(t, 3, invocations)
	require.Equal(t, 3, got)
	require.True(t, result.Fulfilled())
}

func Test_Retry_Exhausted_CarriesLastFailure(t *testing.T) {
	mock := clock.NewMock()
	ex := NewExecutor(WithClock(mock))

	invocations := 0
	result := Retry(ex, func(attempt int) *Future[int] {
		invocations++
		return Failed[int](ex, errors.New("always failing"))
	}, 3, backoff.NewConstantBackOff(10*time.Millisecond))

	var got error
	result.Done(nil, func(err error) { got = err })

	ex.RunUntilIdle()
	mock.Add(10 * time.Millisecond)
	ex.RunUntilIdle()
	mock.Add(10 * time.Millisecond)
	ex.RunUntilIdle()

	require.Equal(t, 3, invocations)

	var exhausted *ExhaustedError
	require.ErrorAs(t, got, &exhausted)
	require.Equal(t, 3, exhausted.Attempts)
	require.ErrorContains(t, got, "always failing")
}

func Test_Retry_PermanentFailure_StopsEarly(t *testing.T) {
	ex := NewExecutor()

	invocations := 0
	result := Retry(ex, func(attempt int) *Future[int] {
		invocations++
		return Failed[int](ex, futureerrors.NewPermanentError(errors.New("bad request")))
	}, 5, backoff.NewConstantBackOff(10*time.Millisecond))

	var got error
	result.Done(nil, func(err error) { got = err })

	ex.RunUntilIdle()

	require.Equal(t, 1, invocations)
	require.ErrorContains(t, got, "bad request")
}

func Test_Retry_LogsFailedAttempts(t *testing.T) {
	mock := clock.NewMock()

	var buf bytes.Buffer
	ex := NewExecutor(
		WithClock(mock),
		WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	result := Retry(ex, func(attempt int) *Future[int] {
		if attempt == 1 {
			return Failed[int](ex, errors.New("transient"))
		}
		return Resolved(ex, attempt)
	}, 2, backoff.NewConstantBackOff(10*time.Millisecond))
	result.Done(func(int) {}, func(error) {})

	ex.RunUntilIdle()
	mock.Add(10 * time.Millisecond)
	ex.RunUntilIdle()

	require.True(t, result.Fulfilled())
	require.Contains(t, buf.String(), "futures.attempt=1")
	require.Contains(t, buf.String(), "transient")
}

func Test_Retry_ActionPanics(t *testing.T) {
	ex := NewExecutor()

	result := Retry(ex, func(attempt int) *Future[int] {
		panic("action exploded")
	}, 1, backoff.NewConstantBackOff(time.Millisecond))

	var got error
	result.Done(nil, func(err error) { got = err })

	ex.RunUntilIdle()

	require.ErrorContains(t, got, "action exploded")
}
