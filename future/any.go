package future

// Any settles with the first input to settle, success or failure. Later
// settlements of the other inputs are discarded, not cancelled; the losing
// computations keep running. An empty input rejects with ErrNoCandidates
// rather than hang.
func Any[T any](ex *Executor, fs ...*Future[T]) *Future[T] {
	result := New[T](ex)

	if len(fs) == 0 {
		result.Reject(ErrNoCandidates)
		return result
	}

	for _, f := range fs {
		f.Done(result.Fulfill, result.Reject)
	}

	return result
}
