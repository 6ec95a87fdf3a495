/*
   Copyright 2026 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package invoke implements signature-compatible invocation and typed
// casting of resolved callables.
//
// Call compatibility is positional and tolerant of surplus: a caller may
// pass more arguments than the callable declares and the trailing extras
// are ignored. This supports the common pattern of offering a superset of
// candidate receiver/context arguments and letting only compatible
// callables fire.
//
// Plain and context invocation are never interchangeable: a context
// callable must be invoked through InvokeContext and a plain callable
// must not, always enforced, never coerced.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/anx/apis"
)

var (
	// ErrContextCallable is returned when a context callable is invoked
	// through the plain path.
	ErrContextCallable = errors.New("anx(invoke): context callable requires InvokeContext")
	// ErrNotContextCallable is returned when a plain callable is invoked
	// through the context path.
	ErrNotContextCallable = errors.New("anx(invoke): not a context callable")
	// ErrNotInvokable is returned when the argument list cannot satisfy
	// the callable's positional parameters.
	ErrNotInvokable = errors.New("anx(invoke): arguments do not satisfy callable")
)

// ctxType is the context.Context interface type.
var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// errType is the error interface type.
var errType = reflect.TypeOf((*error)(nil)).Elem()

// CanInvokeWith reports whether args satisfies c's positional parameters.
// Every declared parameter must be satisfied by the argument at the same
// position; surplus trailing arguments are permitted and ignored. The
// context parameter of context callables is not part of the argument list.
func CanInvokeWith(c apis.Callable, args []any) bool {
	params := c.ParamTypes()
	if len(args) < len(params) {
		return false
	}
	for i, p := range params {
		if !satisfies(args[i], p) {
			return false
		}
	}
	return true
}

// Invoke calls a plain callable with args, returning the first non-error
// result. A callee error is surfaced directly, never wrapped; callee
// panics propagate.
func Invoke(c apis.Callable, args []any) (any, error) {
	if c.IsContext() {
		return nil, fmt.Errorf("%w: %s", ErrContextCallable, c.Name())
	}
	return call(c, reflect.Value{}, args)
}

// InvokeContext calls a context callable with ctx and args.
func InvokeContext(ctx context.Context, c apis.Callable, args []any) (any, error) {
	if !c.IsContext() {
		return nil, fmt.Errorf("%w: %s", ErrNotContextCallable, c.Name())
	}
	return call(c, reflect.ValueOf(ctx), args)
}

// call rebuilds the live argument vector: declared parameters are filled
// positionally from args, and the context slot (when the live type has
// one) receives ctx.
func call(c apis.Callable, ctx reflect.Value, args []any) (any, error) {
	if !CanInvokeWith(c, args) {
		return nil, fmt.Errorf("%w: %s", ErrNotInvokable, c.Name())
	}
	fn := c.Func()
	ft := fn.Type()

	in := make([]reflect.Value, 0, ft.NumIn())
	next := 0
	for i := 0; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		if pt == ctxType && ctx.IsValid() {
			in = append(in, ctx)
			continue
		}
		in = append(in, argValue(args[next], pt))
		next++
	}

	return splitResults(fn.Call(in))
}

// splitResults separates the callee's error result from its value result.
// The error, when non-nil, is the callee's own failure and is returned
// as-is.
func splitResults(out []reflect.Value) (any, error) {
	var result any
	var err error
	for _, v := range out {
		if v.Type() == errType {
			if !v.IsNil() {
				err = v.Interface().(error)
			}
			continue
		}
		if result == nil {
			result = v.Interface()
		}
	}
	return result, err
}

// satisfies reports whether a single argument can fill a parameter slot.
func satisfies(arg any, param reflect.Type) bool {
	if arg == nil {
		return nilable(param)
	}
	return reflect.TypeOf(arg).AssignableTo(param)
}

// argValue converts one argument for a parameter slot; satisfiability was
// checked beforehand.
func argValue(arg any, param reflect.Type) reflect.Value {
	if arg == nil {
		return reflect.Zero(param)
	}
	v := reflect.ValueOf(arg)
	if v.Type() != param {
		// Assignable but distinct (e.g. concrete into interface).
		converted := reflect.New(param).Elem()
		converted.Set(v)
		return converted
	}
	return v
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
