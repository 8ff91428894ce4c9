package args

import (
	"context"
	"fmt"
	"reflect"

	"github.com/corebase/go-futures/converter"
)

func ArgsToInputs(c converter.Converter, args ...any) ([]converter.Payload, error) {
	inputs := make([]converter.Payload, 0)

	for _, arg := range args {
		input, err := c.To(arg)
		if err != nil {
			return nil, fmt.Errorf("converting args to inputs: %w", err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func InputsToArgs(c converter.Converter, fn reflect.Value, inputs []converter.Payload) ([]reflect.Value, bool, error) {
	addContext := false

	fnT := fn.Type()

	numArgs := fnT.NumIn()
	args := make([]reflect.Value, numArgs)

	expected := numArgs
	if numArgs > 0 && IsContext(fnT.In(0)) {
		expected--
	}

	if expected != len(inputs) {
		return nil, numArgs != expected, fmt.Errorf("mismatched argument count: expected %d, got %d", expected, len(inputs))
	}

	input := 0
	for i := 0; i < numArgs; i++ {
		argT := fnT.In(i)

		// Insert context if requested
		if i == 0 && IsContext(argT) {
			addContext = true
			continue
		}

		arg := reflect.New(argT).Interface()
		if err := c.From(inputs[input], arg); err != nil {
			return nil, false, fmt.Errorf("converting inputs: %w", err)
		}

		args[i] = reflect.ValueOf(arg).Elem()

		input++
	}

	return args, addContext, nil
}

// ReturnTypeMatch checks that the given function returns a value assignable to
// TResult. Functions that only return an error match any result type.
func ReturnTypeMatch[TResult any](fn any) error {
	fnT := reflect.TypeOf(fn)
	if fnT.Kind() != reflect.Func {
		return fmt.Errorf("not a function")
	}

	if fnT.NumOut() < 2 {
		// Only an error is returned, nothing to check
		return nil
	}

	resultT := reflect.TypeOf((*TResult)(nil)).Elem()
	if resultT.Kind() == reflect.Interface {
		return nil
	}

	if fnT.Out(0) != resultT {
		return fmt.Errorf("function must return %s, got %s", resultT.Name(), fnT.Out(0).Name())
	}

	return nil
}

// ParamsMatch checks that the given arguments match the function's parameters,
// skipping the first `skip` parameters.
func ParamsMatch(fn any, skip int, args ...any) error {
	fnT := reflect.TypeOf(fn)
	if fnT.Kind() != reflect.Func {
		return fmt.Errorf("not a function")
	}

	expected := fnT.NumIn() - skip
	if expected != len(args) {
		return fmt.Errorf("mismatched argument count: expected %d, got %d", expected, len(args))
	}

	for i, arg := range args {
		paramT := fnT.In(i + skip)
		if paramT.Kind() == reflect.Interface {
			continue
		}

		argT := reflect.TypeOf(arg)
		if argT != paramT {
			return fmt.Errorf("mismatched argument type: expected %s, got %s", paramT.Name(), argT.Name())
		}
	}

	return nil
}

func IsContext(inType reflect.Type) bool {
	contextElem := reflect.TypeOf((*context.Context)(nil)).Elem()
	return inType != nil && inType.Implements(contextElem)
}
