package future

import (
	"time"
)

// Delay fulfills after d has elapsed on the Executor's clock.
func Delay(ex *Executor, d time.Duration) *Future[struct{}] {
	f := New[struct{}](ex)

	ex.AfterFunc(d, func() {
		f.Fulfill(struct{}{})
	})

	return f
}

// Timeout races f against a timer. If the timer fires first, the returned
// Future rejects with a *TimeoutError and f's eventual settlement is
// discarded, not aborted: the underlying computation keeps running.
func Timeout[T any](f *Future[T], d time.Duration) *Future[T] {
	result := New[T](f.ex)

	f.ex.AfterFunc(d, func() {
		result.Reject(&TimeoutError{After: d})
	})

	f.Done(result.Fulfill, result.Reject)

	return result
}
