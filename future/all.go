package future

// All fulfills with the results of all inputs, in input order, once every
// input has fulfilled. It rejects with the first rejection reason; results of
// inputs still pending at that point are discarded. An empty input fulfills
// with an empty slice.
func All[T any](ex *Executor, fs ...*Future[T]) *Future[[]T] {
	result := New[[]T](ex)

	if len(fs) == 0 {
		result.Fulfill([]T{})
		return result
	}

	results := make([]T, len(fs))
	remaining := len(fs)

	for i, f := range fs {
		f.Done(func(v T) {
			results[i] = v

			remaining--
			if remaining == 0 {
				result.Fulfill(results)
			}
		}, result.Reject)
	}

	return result
}
