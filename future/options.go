package future

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/corebase/go-futures/metrics"
)

type ExecutorOption func(e *Executor)

// WithClock overrides the Executor's clock. Tests pass a mock clock to drive
// timers deterministically.
func WithClock(c clock.Clock) ExecutorOption {
	return func(e *Executor) {
		e.clock = c
	}
}

func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithMetrics(client metrics.Client) ExecutorOption {
	return func(e *Executor) {
		e.mc = client
	}
}
