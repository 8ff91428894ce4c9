package future

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/corebase/go-futures/log"
	"github.com/corebase/go-futures/metrics"
)

// Executor is the cooperative scheduler that all settlement and continuation
// dispatch runs on. Continuations execute one at a time on a single loop
// goroutine; there is no lock-based mutual exclusion inside the core.
//
// Code running on other goroutines must not touch Futures directly and
// instead re-enters the loop through Post.
type Executor struct {
	clock  clock.Clock
	logger *slog.Logger
	mc     metrics.Client

	// run queue, owned by the loop goroutine
	queue []func()

	mu     sync.Mutex
	posted []func()
	notify chan struct{}
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		clock:  clock.New(),
		logger: slog.Default(),
		mc:     metrics.NewNoopClient(),
		notify: make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Schedule enqueues a continuation for a later turn. Must be called from the
// loop goroutine.
func (e *Executor) Schedule(fn func()) {
	e.queue = append(e.queue, fn)
}

// Post enqueues a continuation from another goroutine. The continuation is
// delivered into the run queue and executes on the loop goroutine.
func (e *Executor) Post(fn func()) {
	e.mu.Lock()
	e.posted = append(e.posted, fn)
	e.mu.Unlock()

	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// Step runs a single queued continuation. It returns false when no
// continuation was ready.
func (e *Executor) Step() bool {
	e.drainPosted()

	if len(e.queue) == 0 {
		return false
	}

	fn := e.queue[0]
	e.queue[0] = nil
	e.queue = e.queue[1:]

	fn()

	e.mc.Counter("futures.executor.turns", nil, 1)

	return true
}

// RunUntilIdle runs queued continuations until none are left and returns the
// number of turns taken.
func (e *Executor) RunUntilIdle() int {
	turns := 0
	for e.Step() {
		turns++
	}

	return turns
}

// Run processes continuations until ctx is canceled, blocking while idle. The
// calling goroutine becomes the loop goroutine.
func (e *Executor) Run(ctx context.Context) error {
	for {
		e.RunUntilIdle()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.notify:
		}
	}
}

// AfterFunc runs fn on the loop goroutine after d has elapsed on the
// Executor's clock.
func (e *Executor) AfterFunc(d time.Duration, fn func()) {
	e.logger.Debug("scheduling timer", log.DurationKey, d.Milliseconds(), log.AtKey, e.clock.Now().Add(d))

	e.clock.AfterFunc(d, func() {
		e.Post(fn)
	})
}

// Now returns the current time of the Executor's clock.
func (e *Executor) Now() time.Time {
	return e.clock.Now()
}

func (e *Executor) drainPosted() {
	e.mu.Lock()
	posted := e.posted
	e.posted = nil
	e.mu.Unlock()

	e.queue = append(e.queue, posted...)
}
