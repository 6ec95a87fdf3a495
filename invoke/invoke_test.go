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

package invoke_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/config"
	"dirpx.dev/anx/invoke"
	"dirpx.dev/anx/registry"
	"dirpx.dev/anx/resolve"
	"dirpx.dev/anx/sig"
)

type Server struct{ Name string }

func (s Server) Greet(name string) string { return s.Name + ": hello " + name }

const (
	serverQ = "dirpx.dev/anx/invoke_test.Server"
	webPkg  = "example.com/web"
)

var errBoom = errors.New("boom")

func fixtureCallables(t *testing.T) map[string]apis.Callable {
	t.Helper()

	reg := registry.New()
	if err := reg.RegisterType(reflect.TypeOf(Server{})); err != nil {
		t.Fatalf("RegisterType: %v", err)
	}
	err := reg.RegisterFacade(webPkg,
		registry.Func("greet", func(name string) string { return "hello " + name }),
		registry.Func("pair", func(a, b int) (int, error) { return a + b, nil }),
		registry.Func("fail", func() (string, error) { return "", errBoom }),
		registry.Func("fire", func(s string) {}),
		registry.CtxFunc("fetch", func(ctx context.Context, id string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "fetched " + id, nil
		}),
	)
	if err != nil {
		t.Fatalf("RegisterFacade: %v", err)
	}

	r := resolve.New(reg)
	cfg := config.DefaultConfig()
	sigs := map[string]sig.Signature{
		"greet": sig.Func{OwnerName: webPkg, FuncName: "greet", Descriptor: "Lstring;"},
		"pair":  sig.Func{OwnerName: webPkg, FuncName: "pair", Descriptor: "II"},
		"fail":  sig.Func{OwnerName: webPkg, FuncName: "fail"},
		"fire":  sig.Func{OwnerName: webPkg, FuncName: "fire", Descriptor: "Lstring;"},
		"fetch": sig.ContextFunc{OwnerName: webPkg, FuncName: "fetch", Descriptor: "Lstring;"},
		"Greet": sig.Func{OwnerName: serverQ, FuncName: "Greet", Descriptor: "L" + serverQ + ";Lstring;"},
	}

	out := make(map[string]apis.Callable, len(sigs))
	for name, s := range sigs {
		el, err := r.Resolve(s, cfg)
		if err != nil {
			t.Fatalf("Resolve(%s): %v", name, err)
		}
		out[name] = el.(apis.Callable)
	}
	return out
}

func TestCanInvokeWith(t *testing.T) {
	cs := fixtureCallables(t)

	tests := []struct {
		name string
		c    apis.Callable
		args []any
		want bool
	}{
		{"exact", cs["greet"], []any{"x"}, true},
		{"surplus trailing ignored", cs["greet"], []any{"x", 1, true}, true},
		{"too few", cs["pair"], []any{1}, false},
		{"wrong type", cs["greet"], []any{42}, false},
		{"nil for non-nilable", cs["pair"], []any{nil, 2}, false},
		{"method receiver first", cs["Greet"], []any{Server{Name: "s"}, "x"}, true},
		{"method missing receiver", cs["Greet"], []any{"x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := invoke.CanInvokeWith(tt.c, tt.args); got != tt.want {
				t.Fatalf("CanInvokeWith = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvoke(t *testing.T) {
	cs := fixtureCallables(t)

	got, err := invoke.Invoke(cs["greet"], []any{"world"})
	if err != nil {
		t.Fatalf("Invoke(greet): unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("Invoke(greet) = %v, want hello world", got)
	}

	// Surplus arguments are ignored.
	got, err = invoke.Invoke(cs["pair"], []any{1, 2, "extra"})
	if err != nil {
		t.Fatalf("Invoke(pair): unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("Invoke(pair) = %v, want 3", got)
	}

	// Methods take the receiver as the first argument.
	got, err = invoke.Invoke(cs["Greet"], []any{Server{Name: "srv"}, "world"})
	if err != nil {
		t.Fatalf("Invoke(Greet): unexpected error: %v", err)
	}
	if got != "srv: hello world" {
		t.Fatalf("Invoke(Greet) = %v, want srv: hello world", got)
	}

	// No result: nil value, nil error.
	got, err = invoke.Invoke(cs["fire"], []any{"x"})
	if err != nil || got != nil {
		t.Fatalf("Invoke(fire) = (%v,%v), want (nil,nil)", got, err)
	}

	_, err = invoke.Invoke(cs["greet"], nil)
	if !errors.Is(err, invoke.ErrNotInvokable) {
		t.Fatalf("Invoke with missing args: want ErrNotInvokable, got %v", err)
	}
}

// A callee failure surfaces directly, never wrapped.
func TestInvoke_CalleeErrorUnwrapped(t *testing.T) {
	cs := fixtureCallables(t)

	got, err := invoke.Invoke(cs["fail"], nil)
	if err != errBoom {
		t.Fatalf("Invoke(fail): got %v, want errBoom unwrapped", err)
	}
	if got != "" {
		t.Fatalf("Invoke(fail) value = %v, want zero string", got)
	}
}

func TestInvoke_ContextIsolation(t *testing.T) {
	cs := fixtureCallables(t)

	if _, err := invoke.Invoke(cs["fetch"], []any{"id"}); !errors.Is(err, invoke.ErrContextCallable) {
		t.Fatalf("Invoke of context callable: want ErrContextCallable, got %v", err)
	}
	if _, err := invoke.InvokeContext(context.Background(), cs["greet"], []any{"x"}); !errors.Is(err, invoke.ErrNotContextCallable) {
		t.Fatalf("InvokeContext of plain callable: want ErrNotContextCallable, got %v", err)
	}
}

func TestInvokeContext(t *testing.T) {
	cs := fixtureCallables(t)

	got, err := invoke.InvokeContext(context.Background(), cs["fetch"], []any{"42"})
	if err != nil {
		t.Fatalf("InvokeContext: unexpected error: %v", err)
	}
	if got != "fetched 42" {
		t.Fatalf("InvokeContext = %v, want fetched 42", got)
	}

	// Context cancellation surfaces as the callee's own error.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = invoke.InvokeContext(ctx, cs["fetch"], []any{"42"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("InvokeContext after cancel: want context.Canceled, got %v", err)
	}
}

func TestFuncCasts(t *testing.T) {
	cs := fixtureCallables(t)

	greet, ok := invoke.Func1[string, string](cs["greet"])
	if !ok {
		t.Fatalf("Func1[string,string](greet): cast refused")
	}
	if got, err := greet("world"); err != nil || got != "hello world" {
		t.Fatalf("greet cast = (%v,%v), want (hello world,nil)", got, err)
	}

	pair, ok := invoke.Func2[int, int, int](cs["pair"])
	if !ok {
		t.Fatalf("Func2[int,int,int](pair): cast refused")
	}
	if got, err := pair(20, 22); err != nil || got != 42 {
		t.Fatalf("pair cast = (%v,%v), want (42,nil)", got, err)
	}

	fail, ok := invoke.Func0[string](cs["fail"])
	if !ok {
		t.Fatalf("Func0[string](fail): cast refused")
	}
	if _, err := fail(); err != errBoom {
		t.Fatalf("fail cast error = %v, want errBoom", err)
	}

	// No-result callable casts only to the empty interface.
	if _, ok := invoke.Func1[string, string](cs["fire"]); ok {
		t.Fatalf("Func1[string,string](fire): cast accepted, want refused")
	}
	fire, ok := invoke.Func1[string, any](cs["fire"])
	if !ok {
		t.Fatalf("Func1[string,any](fire): cast refused")
	}
	if got, err := fire("x"); err != nil || got != nil {
		t.Fatalf("fire cast = (%v,%v), want (nil,nil)", got, err)
	}
}

func TestFuncCasts_ShapeChecks(t *testing.T) {
	cs := fixtureCallables(t)

	// Arity must match exactly: no surplus tolerance in typed casts.
	if _, ok := invoke.Func2[string, string, string](cs["greet"]); ok {
		t.Fatalf("arity mismatch: cast accepted, want refused")
	}
	// Parameter types are contravariant-checked.
	if _, ok := invoke.Func1[int, string](cs["greet"]); ok {
		t.Fatalf("parameter mismatch: cast accepted, want refused")
	}
	// Context-ness must match.
	if _, ok := invoke.Func1[string, string](cs["fetch"]); ok {
		t.Fatalf("plain cast of context callable: accepted, want refused")
	}
	if _, ok := invoke.CtxFunc1[string, string](cs["greet"]); ok {
		t.Fatalf("context cast of plain callable: accepted, want refused")
	}
	// Covariant return: string result satisfies any.
	if _, ok := invoke.Func1[string, any](cs["greet"]); !ok {
		t.Fatalf("covariant return to any: refused, want accepted")
	}
}

func TestCtxFuncCasts(t *testing.T) {
	cs := fixtureCallables(t)

	fetch, ok := invoke.CtxFunc1[string, string](cs["fetch"])
	if !ok {
		t.Fatalf("CtxFunc1[string,string](fetch): cast refused")
	}
	got, err := fetch(context.Background(), "7")
	if err != nil || got != "fetched 7" {
		t.Fatalf("fetch cast = (%v,%v), want (fetched 7,nil)", got, err)
	}
}

// The superset-argument pattern: offer candidate arguments, let only
// compatible callables fire.
func ExampleCanInvokeWith() {
	reg := registry.New()
	_ = reg.RegisterFacade("example.com/jobs",
		registry.Func("hello", func(name string) string { return "hello " + name }),
	)
	el, _ := resolve.New(reg).Resolve(
		sig.Func{OwnerName: "example.com/jobs", FuncName: "hello", Descriptor: "Lstring;"},
		config.DefaultConfig(),
	)
	c := el.(apis.Callable)

	args := []any{"world", 42}
	if invoke.CanInvokeWith(c, args) {
		out, _ := invoke.Invoke(c, args)
		fmt.Println(out)
	}
	// Output: hello world
}
