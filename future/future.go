package future

import (
	"github.com/corebase/go-futures/futureerrors"
	"github.com/corebase/go-futures/log"
)

type state int

const (
	statePending state = iota
	stateFulfilled
	stateRejected
)

// Future is a single-assignment container for an eventual value or failure
// reason. A Future settles at most once; settling an already-settled Future is
// a no-op, uniformly across this package. Combinators like Any and Timeout
// rely on this to discard a losing branch's later settlement.
//
// All methods must be called on the loop goroutine of the Future's Executor.
type Future[T any] struct {
	ex *Executor

	state state
	value T
	err   error

	// continuations registered while pending, invoked in registration order
	callbacks []func()

	handled bool
}

// New returns a pending Future.
func New[T any](ex *Executor) *Future[T] {
	return &Future[T]{ex: ex}
}

// Resolved returns a Future already fulfilled with v.
func Resolved[T any](ex *Executor, v T) *Future[T] {
	f := New[T](ex)
	f.Fulfill(v)
	return f
}

// Failed returns a Future already rejected with err.
func Failed[T any](ex *Executor, err error) *Future[T] {
	f := New[T](ex)
	f.Reject(err)
	return f
}

func (f *Future[T]) Executor() *Executor {
	return f.ex
}

func (f *Future[T]) Pending() bool {
	return f.state == statePending
}

func (f *Future[T]) Fulfilled() bool {
	return f.state == stateFulfilled
}

func (f *Future[T]) Rejected() bool {
	return f.state == stateRejected
}

// Fulfill settles the Future with a value. No-op if already settled.
func (f *Future[T]) Fulfill(v T) {
	if f.state != statePending {
		return
	}

	f.state = stateFulfilled
	f.value = v
	f.drain()
}

// Reject settles the Future with a failure reason. No-op if already settled.
// A rejection with no continuation registered by the following turn is logged
// as unhandled.
func (f *Future[T]) Reject(err error) {
	if f.state != statePending {
		return
	}

	f.state = stateRejected
	f.err = err
	f.drain()

	if !f.handled {
		f.ex.Schedule(func() {
			if !f.handled {
				f.ex.logger.Warn("unhandled rejection", log.ReasonKey, err)
			}
		})
	}
}

// Done registers terminal observers for the Future's settlement. Observers run
// on a later turn, in registration order relative to other continuations. A
// panic inside an observer is logged; it has no dependent Future to reject.
func (f *Future[T]) Done(onFulfilled func(T), onRejected func(error)) {
	f.subscribe(onRejected != nil, func() {
		defer f.recoverObserver()

		switch f.state {
		case stateFulfilled:
			if onFulfilled != nil {
				onFulfilled(f.value)
			}
		case stateRejected:
			if onRejected != nil {
				onRejected(f.err)
			}
		}
	})
}

// Then returns a dependent Future that settles with fn's result once f
// fulfills. Rejections of f propagate to the dependent Future unchanged; a
// panic inside fn rejects the dependent Future instead of escaping the chain.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	d := New[U](f.ex)

	f.subscribe(true, func() {
		if f.state == stateRejected {
			d.Reject(f.err)
			return
		}

		v, err := guard(func() (U, error) {
			return fn(f.value)
		})
		if err != nil {
			d.Reject(err)
			return
		}

		d.Fulfill(v)
	})

	return d
}

// ThenFuture is Then for continuations that are themselves asynchronous: the
// dependent Future settles with the settlement of the Future fn returns.
func ThenFuture[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	d := New[U](f.ex)

	f.subscribe(true, func() {
		if f.state == stateRejected {
			d.Reject(f.err)
			return
		}

		inner, err := guard(func() (*Future[U], error) {
			return fn(f.value), nil
		})
		if err != nil {
			d.Reject(err)
			return
		}

		inner.subscribe(true, func() {
			if inner.state == stateRejected {
				d.Reject(inner.err)
				return
			}

			d.Fulfill(inner.value)
		})
	})

	return d
}

// Catch returns a dependent Future that recovers rejections of f with fn.
// Fulfillments pass through unchanged.
func Catch[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	d := New[T](f.ex)

	f.subscribe(true, func() {
		if f.state == stateFulfilled {
			d.Fulfill(f.value)
			return
		}

		v, err := guard(func() (T, error) {
			return fn(f.err)
		})
		if err != nil {
			d.Reject(err)
			return
		}

		d.Fulfill(v)
	})

	return d
}

// subscribe registers a continuation. handles indicates whether the
// continuation observes or forwards rejections; either counts as handling.
// Continuations registered after settlement run on the next turn, never
// synchronously.
func (f *Future[T]) subscribe(handles bool, cb func()) {
	if handles {
		f.handled = true
	}

	if f.state == statePending {
		f.callbacks = append(f.callbacks, cb)
		return
	}

	f.ex.Schedule(cb)
}

func (f *Future[T]) drain() {
	for _, cb := range f.callbacks {
		f.ex.Schedule(cb)
	}

	f.callbacks = nil
}

func (f *Future[T]) recoverObserver() {
	if r := recover(); r != nil {
		f.ex.logger.Error("continuation panicked", log.ReasonKey, futureerrors.FromPanic(r))
	}
}

// guard converts a panic inside fn into an error return.
func guard[R any](fn func() (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = futureerrors.FromPanic(p)
		}
	}()

	return fn()
}
