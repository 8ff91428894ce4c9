package future

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func Test_Executor_StepEmpty(t *testing.T) {
	ex := NewExecutor()

	require.False(t, ex.Step())
}

func Test_Executor_RunsInOrder(t *testing.T) {
	ex := NewExecutor()

	var order []int
	ex.Schedule(func() {
		order = append(order, 1)
	})
	ex.Schedule(func() {
		order = append(order, 2)
	})
	ex.Schedule(func() {
		order = append(order, 3)
	})

	turns := ex.RunUntilIdle()

	require.Equal(t, 3, turns)
	require.Equal(t, []int{1, 2, 3}, order)
}

func Test_Executor_Step_RunsSingleContinuation(t *testing.T) {
	ex := NewExecutor()

	ran := 0
	ex.Schedule(func() { ran++ })
	ex.Schedule(func() { ran++ })

	require.True(t, ex.Step())
	require.Equal(t, 1, ran)

	require.True(t, ex.Step())
	require.False(t, ex.Step())
	require.Equal(t, 2, ran)
}

func Test_Executor_ContinuationsCanSchedule(t *testing.T) {
	ex := NewExecutor()

	var order []int
	ex.Schedule(func() {
		order = append(order, 1)
		ex.Schedule(func() {
			order = append(order, 3)
		})
	})
	ex.Schedule(func() {
		order = append(order, 2)
	})

	ex.RunUntilIdle()

	require.Equal(t, []int{1, 2, 3}, order)
}

func Test_Executor_Post_FromOtherGoroutine(t *testing.T) {
	ex := NewExecutor()

	ran := false

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ex.Post(func() {
			ran = true
		})
	}()
	wg.Wait()

	ex.RunUntilIdle()

	require.True(t, ran)
}

func Test_Executor_AfterFunc(t *testing.T) {
	mock := clock.NewMock()
	ex := NewExecutor(WithClock(mock))

	fired := false
	ex.AfterFunc(50*time.Millisecond, func() {
		fired = true
	})

	ex.RunUntilIdle()
	require.False(t, fired)

	mock.Add(49 * time.Millisecond)
	ex.RunUntilIdle()
	require.False(t, fired)

	mock.Add(1 * time.Millisecond)
	ex.RunUntilIdle()
	require.True(t, fired)
}

func Test_Executor_AfterFunc_LogsSchedule(t *testing.T) {
	mock := clock.NewMock()

	var buf bytes.Buffer
	ex := NewExecutor(
		WithClock(mock),
		WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	ex.AfterFunc(time.Second, func() {})

	require.Contains(t, buf.String(), "futures.duration_ms=1000")
	require.Contains(t, buf.String(), "futures.timer.at")
}

func Test_Executor_Run_StopsWhenCanceled(t *testing.T) {
	ex := NewExecutor()

	ctx, cancel := context.WithCancel(context.Background())

	ran := false
	ex.Schedule(func() {
		ran = true
		cancel()
	})

	err := ex.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	require.True(t, ran)
}
