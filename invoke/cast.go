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

package invoke

import (
	"context"
	"reflect"

	"dirpx.dev/anx/apis"
)

// Typed casts build a statically typed function value over a resolved
// callable for call sites that want a closure instead of dynamic
// argument-list invocation. A cast succeeds iff the callable's
// context-ness and arity match exactly, every requested parameter type is
// assignable to the callable's parameter at the same position
// (contravariant), and the callable's result is assignable to the
// requested return type (covariant).

// Func0 casts a zero-parameter plain callable.
func Func0[R any](c apis.Callable) (func() (R, error), bool) {
	if !castable(c, false, nil, reflect.TypeFor[R]()) {
		return nil, false
	}
	return func() (R, error) {
		return typedInvoke[R](c, nil)
	}, true
}

// Func1 casts a one-parameter plain callable.
func Func1[P1, R any](c apis.Callable) (func(P1) (R, error), bool) {
	if !castable(c, false, []reflect.Type{reflect.TypeFor[P1]()}, reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(p1 P1) (R, error) {
		return typedInvoke[R](c, []any{p1})
	}, true
}

// Func2 casts a two-parameter plain callable.
func Func2[P1, P2, R any](c apis.Callable) (func(P1, P2) (R, error), bool) {
	if !castable(c, false,
		[]reflect.Type{reflect.TypeFor[P1](), reflect.TypeFor[P2]()},
		reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(p1 P1, p2 P2) (R, error) {
		return typedInvoke[R](c, []any{p1, p2})
	}, true
}

// Func3 casts a three-parameter plain callable.
func Func3[P1, P2, P3, R any](c apis.Callable) (func(P1, P2, P3) (R, error), bool) {
	if !castable(c, false,
		[]reflect.Type{reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]()},
		reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(p1 P1, p2 P2, p3 P3) (R, error) {
		return typedInvoke[R](c, []any{p1, p2, p3})
	}, true
}

// CtxFunc0 casts a zero-parameter context callable.
func CtxFunc0[R any](c apis.Callable) (func(context.Context) (R, error), bool) {
	if !castable(c, true, nil, reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(ctx context.Context) (R, error) {
		return typedInvokeContext[R](ctx, c, nil)
	}, true
}

// CtxFunc1 casts a one-parameter context callable.
func CtxFunc1[P1, R any](c apis.Callable) (func(context.Context, P1) (R, error), bool) {
	if !castable(c, true, []reflect.Type{reflect.TypeFor[P1]()}, reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(ctx context.Context, p1 P1) (R, error) {
		return typedInvokeContext[R](ctx, c, []any{p1})
	}, true
}

// CtxFunc2 casts a two-parameter context callable.
func CtxFunc2[P1, P2, R any](c apis.Callable) (func(context.Context, P1, P2) (R, error), bool) {
	if !castable(c, true,
		[]reflect.Type{reflect.TypeFor[P1](), reflect.TypeFor[P2]()},
		reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(ctx context.Context, p1 P1, p2 P2) (R, error) {
		return typedInvokeContext[R](ctx, c, []any{p1, p2})
	}, true
}

// CtxFunc3 casts a three-parameter context callable.
func CtxFunc3[P1, P2, P3, R any](c apis.Callable) (func(context.Context, P1, P2, P3) (R, error), bool) {
	if !castable(c, true,
		[]reflect.Type{reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]()},
		reflect.TypeFor[R]()) {
		return nil, false
	}
	return func(ctx context.Context, p1 P1, p2 P2, p3 P3) (R, error) {
		return typedInvokeContext[R](ctx, c, []any{p1, p2, p3})
	}, true
}

// castable checks exact shape compatibility for a typed cast.
func castable(c apis.Callable, wantCtx bool, params []reflect.Type, ret reflect.Type) bool {
	if c.IsContext() != wantCtx {
		return false
	}
	declared := c.ParamTypes()
	if len(declared) != len(params) {
		return false
	}
	for i, p := range params {
		if !p.AssignableTo(declared[i]) {
			return false
		}
	}
	r := c.ReturnType()
	if r == nil {
		// No result: only castable when anything satisfies R.
		return ret.Kind() == reflect.Interface && ret.NumMethod() == 0
	}
	return r.AssignableTo(ret)
}

func typedInvoke[R any](c apis.Callable, args []any) (R, error) {
	var zero R
	out, err := Invoke(c, args)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	return out.(R), nil
}

func typedInvokeContext[R any](ctx context.Context, c apis.Callable, args []any) (R, error) {
	var zero R
	out, err := InvokeContext(ctx, c, args)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	return out.(R), nil
}
