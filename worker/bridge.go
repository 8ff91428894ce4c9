package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/corebase/go-futures/converter"
	"github.com/corebase/go-futures/future"
	"github.com/corebase/go-futures/futureerrors"
	"github.com/corebase/go-futures/internal/args"
	"github.com/corebase/go-futures/log"
	"github.com/corebase/go-futures/metrics"
)

// Bridge executes tasks on worker goroutines behind a serialization boundary
// and resolves Futures in the caller's context when the workers report
// completion or failure. It is the only component that crosses an execution
// context boundary: completions are marshaled back onto the Executor's loop
// through Post, never delivered synchronously from a worker.
type Bridge struct {
	ex       *future.Executor
	registry *Registry
	options  *Options

	tasks       chan *taskMessage
	completions chan *resultMessage

	// correlation table mapping task identifiers to settlement callbacks,
	// owned by the loop goroutine
	pending map[string]func(msg *resultMessage)

	// recently settled task identifiers, to tell late duplicate completions
	// apart from unknown ones
	recent *ttlcache.Cache[string, struct{}]

	// tracks dispatched tasks until their completion message is sent
	tasksWg sync.WaitGroup

	cancel         context.CancelFunc
	dispatcherDone chan struct{}
	pumpDone       chan struct{}

	started bool
	stopped bool
}

func New(ex *future.Executor, registry *Registry, opts ...Option) *Bridge {
	options := DefaultOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.Converter == nil {
		options.Converter = converter.DefaultConverter
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	if options.Metrics == nil {
		options.Metrics = metrics.NewNoopClient()
	}

	return &Bridge{
		ex:       ex,
		registry: registry,
		options:  &options,

		tasks:       make(chan *taskMessage),
		completions: make(chan *resultMessage),

		pending: map[string]func(msg *resultMessage){},
		recent: ttlcache.New(
			ttlcache.WithTTL[string, struct{}](options.CompletionMemory),
		),

		dispatcherDone: make(chan struct{}, 1),
		pumpDone:       make(chan struct{}, 1),
	}
}

// Start launches the worker context.
func (b *Bridge) Start(ctx context.Context) error {
	if b.started {
		return errors.New("bridge already started")
	}
	b.started = true

	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	go b.recent.Start()
	go b.dispatcher(ctx)
	go b.pump(ctx)

	return nil
}

// Stop terminates the worker context. Futures of tasks still outstanding are
// rejected with ReasonTerminated; they never remain pending forever. Stop does
// not wait for running task functions: tasks that ignore cancellation keep
// running in the background and their eventual completions are discarded. Use
// WaitForCompletion first for a graceful drain.
func (b *Bridge) Stop() error {
	if !b.started || b.stopped {
		return nil
	}
	b.stopped = true

	close(b.tasks)
	b.cancel()

	<-b.dispatcherDone
	<-b.pumpDone

	b.recent.Stop()

	b.ex.Post(func() {
		b.failOutstanding()
	})

	return nil
}

// WaitForCompletion blocks until every dispatched task function has returned
// and reported a completion. It does not settle the associated futures; the
// caller's loop still has to process the queued completions.
func (b *Bridge) WaitForCompletion() error {
	b.tasksWg.Wait()
	return nil
}

// Pending returns the number of outstanding tasks. The bridge imposes no
// dispatch limit by default; callers implement their own backpressure or
// batching on top of this count. Must be called on the loop goroutine.
func (b *Bridge) Pending() int {
	return len(b.pending)
}

// Run serializes the named task's arguments, dispatches it to a worker, and
// returns immediately with a pending Future correlated to the task.  Worker
// failures reject the Future with a *Error; they never surface anywhere else
// in the calling context. Must be called on the loop goroutine, after Start.
func Run[TResult any](b *Bridge, name string, taskArgs ...any) *future.Future[TResult] {
	f := future.New[TResult](b.ex)

	if !b.started || b.stopped {
		f.Reject(&Error{Reason: ReasonTerminated})
		return f
	}

	task, err := b.registry.GetTask(name)
	if err != nil {
		f.Reject(err)
		return f
	}

	if err := args.ReturnTypeMatch[TResult](task); err != nil {
		f.Reject(err)
		return f
	}

	skip := 0
	if t := reflect.TypeOf(task); t.NumIn() > 0 && args.IsContext(t.In(0)) {
		skip = 1
	}
	if err := args.ParamsMatch(task, skip, taskArgs...); err != nil {
		f.Reject(err)
		return f
	}

	inputs, err := args.ArgsToInputs(b.options.Converter, taskArgs...)
	if err != nil {
		f.Reject(fmt.Errorf("converting task args: %w", err))
		return f
	}

	taskID := uuid.NewString()

	timer := metrics.Timer(b.options.Metrics, "futures.worker.task_duration", metrics.Tags{"task": name})

	b.pending[taskID] = func(msg *resultMessage) {
		timer.Stop()

		if msg.Status == StatusFailure {
			reason := msg.reason
			if reason == "" {
				reason = ReasonTaskFailed
			}

			f.Reject(&Error{Reason: reason, TaskID: taskID, Err: futureerrors.ToError(msg.Error)})
			return
		}

		var v TResult
		if len(msg.Result) > 0 {
			if err := b.options.Converter.From(msg.Result, &v); err != nil {
				f.Reject(fmt.Errorf("converting task result: %w", err))
				return
			}
		}

		f.Fulfill(v)
	}

	b.options.Metrics.Counter("futures.worker.tasks_dispatched", metrics.Tags{"task": name}, 1)
	b.options.Logger.Debug("dispatching task", log.TaskIDKey, taskID, log.TaskNameKey, name)

	b.tasksWg.Add(1)
	b.tasks <- &taskMessage{TaskID: taskID, Name: name, Inputs: inputs}

	return f
}

func (b *Bridge) dispatcher(ctx context.Context) {
	var sem chan struct{}
	if b.options.MaxParallelTasks > 0 {
		sem = make(chan struct{}, b.options.MaxParallelTasks)
	}

	for t := range b.tasks {
		go func() {
			defer b.tasksWg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			b.execute(ctx, t)
		}()
	}

	b.dispatcherDone <- struct{}{}
}

// execute runs on a worker goroutine. Exactly one completion message is sent
// per task: the deferred guard turns a panic or an exit without reply into a
// failure completion.
func (b *Bridge) execute(ctx context.Context, t *taskMessage) {
	replied := false

	defer func() {
		if replied {
			return
		}

		msg := &resultMessage{TaskID: t.TaskID, Status: StatusFailure}

		if r := recover(); r != nil {
			msg.Error = futureerrors.FromError(futureerrors.FromPanic(r))
		} else {
			msg.reason = ReasonCrashed
			msg.Error = futureerrors.FromError(errors.New("worker exited without reporting a result"))
		}

		b.reply(ctx, msg)
	}()

	result, err := b.invoke(ctx, t)

	msg := &resultMessage{TaskID: t.TaskID}
	if err != nil {
		msg.Status = StatusFailure
		msg.Error = futureerrors.FromError(err)
	} else {
		msg.Status = StatusSuccess
		msg.Result = result
	}

	replied = true
	b.reply(ctx, msg)
}

// invoke decodes the task's arguments, calls the registered function via
// reflection, and encodes its result. Only serialized values cross this
// boundary.
func (b *Bridge) invoke(ctx context.Context, t *taskMessage) (converter.Payload, error) {
	task, err := b.registry.GetTask(t.Name)
	if err != nil {
		return nil, err
	}

	taskFn := reflect.ValueOf(task)

	callArgs, addContext, err := args.InputsToArgs(b.options.Converter, taskFn, t.Inputs)
	if err != nil {
		return nil, fmt.Errorf("converting task inputs: %w", err)
	}

	if addContext {
		callArgs[0] = reflect.ValueOf(ctx)
	}

	results := taskFn.Call(callArgs)

	var result converter.Payload

	if len(results) > 1 {
		result, err = b.options.Converter.To(results[0].Interface())
		if err != nil {
			return nil, fmt.Errorf("converting task result: %w", err)
		}
	}

	errResult := results[len(results)-1]
	if errResult.IsNil() {
		return result, nil
	}

	errInterface, ok := errResult.Interface().(error)
	if !ok {
		return nil, fmt.Errorf("task error result does not satisfy error interface (%T)", errResult)
	}

	return nil, errInterface
}

func (b *Bridge) reply(ctx context.Context, msg *resultMessage) {
	select {
	case b.completions <- msg:
	case <-ctx.Done():
	}
}

// pump marshals completion messages back into the caller's context.
// Settlement always happens on the loop goroutine.
func (b *Bridge) pump(ctx context.Context) {
	for {
		select {
		case msg := <-b.completions:
			b.ex.Post(func() {
				b.complete(msg)
			})
		case <-ctx.Done():
			b.pumpDone <- struct{}{}
			return
		}
	}
}

// complete runs on the loop goroutine.
func (b *Bridge) complete(msg *resultMessage) {
	settle, ok := b.pending[msg.TaskID]
	if !ok {
		// Protocol error: not correlated with any pending future. Log and
		// discard; other pending tasks are unaffected.
		if b.recent.Get(msg.TaskID) != nil {
			b.options.Logger.Warn("discarding duplicate completion for settled task", log.TaskIDKey, msg.TaskID)
		} else {
			b.options.Logger.Error("discarding completion for unknown task", log.TaskIDKey, msg.TaskID)
		}

		b.options.Metrics.Counter("futures.worker.protocol_errors", nil, 1)

		return
	}

	delete(b.pending, msg.TaskID)
	b.recent.Set(msg.TaskID, struct{}{}, ttlcache.DefaultTTL)

	b.options.Logger.Debug("task settled",
		log.TaskIDKey, msg.TaskID,
		log.StateKey, string(msg.Status),
		log.PendingTasksKey, len(b.pending))

	settle(msg)
}

func (b *Bridge) failOutstanding() {
	for taskID, settle := range b.pending {
		delete(b.pending, taskID)

		settle(&resultMessage{
			TaskID: taskID,
			Status: StatusFailure,
			Error:  futureerrors.FromError(errors.New("worker context terminated")),
			reason: ReasonTerminated,
		})
	}
}
