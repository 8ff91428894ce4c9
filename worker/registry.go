package worker

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/corebase/go-futures/internal/fn"
)

// Task is a callable executed by workers. Tasks are functions taking an
// optional context.Context first parameter plus serializable arguments, and
// returning either (result, error) or just error.
type Task = any

type Registry struct {
	sync.Mutex

	taskMap map[string]Task
}

// NewRegistry creates a new registry instance.
func NewRegistry() *Registry {
	return &Registry{
		taskMap: make(map[string]Task),
	}
}

type registerConfig struct {
	Name string
}

// RegisterTask registers a callable so workers can execute it by name. The
// name defaults to the function's name.
func (r *Registry) RegisterTask(task Task, opts ...RegisterOption) error {
	cfg := registerOptions(opts).applyRegisterOptions(registerConfig{})

	name := cfg.Name
	if name == "" {
		name = fn.Name(task)
	}

	if err := checkTask(reflect.TypeOf(task)); err != nil {
		return err
	}

	r.Lock()
	defer r.Unlock()

	if _, ok := r.taskMap[name]; ok {
		return &ErrTaskAlreadyRegistered{fmt.Sprintf("task with name %q already registered", name)}
	}
	r.taskMap[name] = task

	return nil
}

// GetTask returns the task registered under the given name.
func (r *Registry) GetTask(name string) (Task, error) {
	r.Lock()
	defer r.Unlock()

	if t, ok := r.taskMap[name]; ok {
		return t, nil
	}

	return nil, fmt.Errorf("task %q not found", name)
}

func checkTask(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Func {
		return &ErrInvalidTask{"task is not a function"}
	}

	if t.NumOut() == 0 {
		return &ErrInvalidTask{"task must return error"}
	}

	if t.NumOut() > 2 {
		return &ErrInvalidTask{"task must return at most two values"}
	}

	errType := reflect.TypeOf((*error)(nil)).Elem()
	if !t.Out(t.NumOut() - 1).Implements(errType) {
		return &ErrInvalidTask{"task must return error as last return value"}
	}

	return nil
}
