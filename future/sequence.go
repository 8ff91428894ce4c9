package future

import (
	"errors"
	"iter"
)

// Sequence applies step to each element of seq strictly one at a time,
// accumulating results in input order. The input may be lazy or infinite;
// the next element is pulled only after the previous step's Future has
// settled. The first rejection stops iteration and rejects the result, except
// that a step rejecting with Break fulfills the result with the results
// collected so far.
func Sequence[T, R any](ex *Executor, seq iter.Seq[T], step func(T) *Future[R]) *Future[[]R] {
	result := New[[]R](ex)

	next, stop := iter.Pull(seq)

	results := []R{}

	var run func()
	run = func() {
		v, ok := next()
		if !ok {
			stop()
			result.Fulfill(results)
			return
		}

		f, err := guard(func() (*Future[R], error) {
			return step(v), nil
		})
		if err != nil {
			stop()
			result.Reject(err)
			return
		}

		f.Done(func(r R) {
			results = append(results, r)
			run()
		}, func(err error) {
			stop()

			if errors.Is(err, Break) {
				result.Fulfill(results)
				return
			}

			result.Reject(err)
		})
	}

	ex.Schedule(run)

	return result
}
