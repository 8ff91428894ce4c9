package worker

import (
	"log/slog"
	"time"

	"github.com/corebase/go-futures/converter"
	"github.com/corebase/go-futures/metrics"
)

type Options struct {
	// MaxParallelTasks limits how many tasks execute at the same time. The
	// default of 0 means no limit: the bridge dispatches as many tasks as
	// requested, and callers implement backpressure on top of Pending.
	MaxParallelTasks int

	// Converter for task arguments and results
	Converter converter.Converter

	Logger *slog.Logger

	Metrics metrics.Client

	// CompletionMemory is how long settled task identifiers are remembered so
	// duplicate completions can be told apart from unknown ones.
	CompletionMemory time.Duration
}

var DefaultOptions = Options{
	CompletionMemory: time.Minute,
}

type Option func(o *Options)

func WithMaxParallelTasks(n int) Option {
	return func(o *Options) {
		o.MaxParallelTasks = n
	}
}

func WithConverter(c converter.Converter) Option {
	return func(o *Options) {
		o.Converter = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetrics(client metrics.Client) Option {
	return func(o *Options) {
		o.Metrics = client
	}
}

func WithCompletionMemory(d time.Duration) Option {
	return func(o *Options) {
		o.CompletionMemory = d
	}
}
