package future

// Invoke wraps a callable in the asynchronous contract: fn runs on the next
// turn, and a synchronous panic becomes a rejected Future rather than a raised
// failure, so callers see a uniform Future regardless of how fn fails.
func Invoke[T any](ex *Executor, fn func() (T, error)) *Future[T] {
	f := New[T](ex)

	ex.Schedule(func() {
		v, err := guard(fn)
		if err != nil {
			f.Reject(err)
			return
		}

		f.Fulfill(v)
	})

	return f
}
