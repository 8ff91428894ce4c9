package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func reg_task1(ctx context.Context) error {
	return nil
}

func TestRegistry_RegisterTask(t *testing.T) {
	type args struct {
		name string
		task any
	}
	tests := []struct {
		name     string
		args     args
		wantName string
		wantErr  bool
	}{
		{
			name: "valid task",
			args: args{
				task: reg_task1,
			},
			wantName: "reg_task1",
		},
		{
			name: "valid task by name",
			args: args{
				name: "CustomName",
				task: reg_task1,
			},
			wantName: "CustomName",
		},
		{
			name: "valid task with result",
			args: args{
				task: func(ctx context.Context) (int, error) { return 42, nil },
			},
		},
		{
			name: "valid task with multiple parameters",
			args: args{
				task: func(ctx context.Context, a, b int) (int, error) { return a + b, nil },
			},
		},
		{
			name: "valid task without context",
			args: args{
				task: func(a int) (int, error) { return a, nil },
			},
		},
		{
			name: "missing error result",
			args: args{
				task: func(ctx context.Context) {},
			},
			wantErr: true,
		},
		{
			name: "missing error with results",
			args: args{
				task: func(ctx context.Context) int { return 42 },
			},
			wantErr: true,
		},
		{
			name: "too many results",
			args: args{
				task: func(ctx context.Context) (int, string, error) { return 42, "", nil },
			},
			wantErr: true,
		},
		{
			name: "not a function",
			args: args{
				task: "not a function",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()

			err := r.RegisterTask(tt.args.task, WithName(tt.args.name))

			if (err != nil) != tt.wantErr {
				t.Errorf("Registry.RegisterTask() error = %v, wantErr %v", err, tt.wantErr)
				t.FailNow()
			}

			if tt.wantName != "" {
				x, err := r.GetTask(tt.wantName)
				require.NoError(t, err)
				require.NotNil(t, x)
			}
		})
	}
}

func Test_RegisterTask_Conflict(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	var wantErr *ErrTaskAlreadyRegistered

	err := r.RegisterTask(reg_task1)
	require.NoError(t, err)

	err = r.RegisterTask(reg_task1)
	require.ErrorAs(t, err, &wantErr)

	err = r.RegisterTask(reg_task1, WithName("CustomName"))
	require.NoError(t, err)

	err = r.RegisterTask(reg_task1, WithName("CustomName"))
	require.ErrorAs(t, err, &wantErr)
}

func Test_GetTask_NotFound(t *testing.T) {
	r := NewRegistry()

	x, err := r.GetTask("nonexistent")
	require.Error(t, err)
	require.Nil(t, x)
	require.ErrorContains(t, err, "not found")
}
