package future

import (
	"github.com/cenkalti/backoff/v4"

	"github.com/corebase/go-futures/futureerrors"
	"github.com/corebase/go-futures/log"
)

// Retry invokes action up to attempts times, waiting according to policy
// between failed attempts. It fulfills with the first successful attempt's
// value and rejects with an *ExhaustedError carrying the last underlying
// failure once attempts are used up. Permanent failures (see
// futureerrors.NewPermanentError) and a policy returning backoff.Stop end
// retrying early.
//
// There is no cancellation: an attempt abandoned by the caller runs to
// completion in the background and its settlement is discarded.
func Retry[T any](ex *Executor, action func(attempt int) *Future[T], attempts int, policy backoff.BackOff) *Future[T] {
	result := New[T](ex)

	if attempts < 1 {
		attempts = 1
	}

	policy.Reset()

	attempt := 0

	var try func()

	fail := func(err error) {
		if attempt >= attempts || !futureerrors.CanRetry(err) {
			result.Reject(&ExhaustedError{Attempts: attempt, Cause: err})
			return
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			result.Reject(&ExhaustedError{Attempts: attempt, Cause: err})
			return
		}

		ex.logger.Debug("attempt failed, retrying", log.AttemptKey, attempt, log.ReasonKey, err)

		ex.AfterFunc(delay, try)
	}

	try = func() {
		attempt++

		f, err := guard(func() (*Future[T], error) {
			return action(attempt), nil
		})
		if err != nil {
			fail(err)
			return
		}

		f.Done(result.Fulfill, fail)
	}

	ex.Schedule(try)

	return result
}
