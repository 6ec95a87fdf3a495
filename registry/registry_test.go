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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/anx/registry"
)

type Server struct{ Port int }

type Route struct{ Method string }

func TestRegisterType_IdempotentAndLookup(t *testing.T) {
	reg := registry.New()

	qname := "dirpx.dev/anx/registry_test.Server"

	if err := reg.RegisterType(reflect.TypeOf(Server{})); err != nil {
		t.Fatalf("RegisterType(Server): unexpected error: %v", err)
	}
	// Idempotent: the same type again, also via pointer (erased).
	if err := reg.RegisterType(reflect.TypeOf(Server{})); err != nil {
		t.Fatalf("RegisterType(Server) idempotent: unexpected error: %v", err)
	}
	if err := reg.RegisterType(reflect.TypeOf(&Server{})); err != nil {
		t.Fatalf("RegisterType(*Server): unexpected error: %v", err)
	}

	got, ok := reg.LookupType(qname)
	if !ok || got != reflect.TypeOf(Server{}) {
		t.Fatalf("LookupType(%q) = (%v,%v), want (Server,true)", qname, got, ok)
	}
	if _, ok := reg.LookupType("absent.Type"); ok {
		t.Fatalf("LookupType(absent.Type): want miss")
	}
	if _, ok := reg.LookupType(""); ok {
		t.Fatalf("LookupType(\"\"): want miss")
	}
}

func TestRegisterType_Errors(t *testing.T) {
	reg := registry.New()

	if err := reg.RegisterType(nil); err != registry.ErrNilType {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.RegisterType(reflect.TypeOf(struct{ A int }{})); err != registry.ErrNotNamed {
		t.Fatalf("anonymous struct: want ErrNotNamed, got %v", err)
	}
}

func TestBuiltinsSeeded(t *testing.T) {
	reg := registry.New()

	for _, qname := range []string{"string", "uint", "uint8", "uintptr", "complex128", "error"} {
		if _, ok := reg.LookupType(qname); !ok {
			t.Fatalf("LookupType(%q): builtin not seeded", qname)
		}
	}
}

func TestRegisterAnnotationType_MarksIndexed(t *testing.T) {
	reg := registry.New()

	qname := "dirpx.dev/anx/registry_test.Route"
	if reg.IsIndexed(qname) {
		t.Fatalf("IsIndexed before registration: want false")
	}
	if err := reg.RegisterAnnotationType(reflect.TypeOf(Route{})); err != nil {
		t.Fatalf("RegisterAnnotationType: unexpected error: %v", err)
	}
	if !reg.IsIndexed(qname) {
		t.Fatalf("IsIndexed after registration: want true")
	}
	// Also resolvable as an ordinary type.
	if _, ok := reg.LookupType(qname); !ok {
		t.Fatalf("LookupType(%q): annotation type not registered as type", qname)
	}
}

func TestAnnotate_Accumulates(t *testing.T) {
	reg := registry.New()

	owner := "dirpx.dev/anx/registry_test.Server"
	if err := reg.Annotate(owner, "", Route{Method: "GET"}); err != nil {
		t.Fatalf("Annotate class: unexpected error: %v", err)
	}
	if err := reg.Annotate(owner, "", Route{Method: "POST"}); err != nil {
		t.Fatalf("Annotate class again: unexpected error: %v", err)
	}
	if err := reg.Annotate(owner, "Greet", Route{Method: "GET"}); err != nil {
		t.Fatalf("Annotate member: unexpected error: %v", err)
	}

	classAnns := reg.AnnotationsOf(owner, "")
	if len(classAnns) != 2 {
		t.Fatalf("AnnotationsOf(class) = %v, want 2 entries", classAnns)
	}
	memberAnns := reg.AnnotationsOf(owner, "Greet")
	if len(memberAnns) != 1 {
		t.Fatalf("AnnotationsOf(member) = %v, want 1 entry", memberAnns)
	}
	// Class and member attachment sets never bleed into each other.
	if reflect.DeepEqual(classAnns, memberAnns) {
		t.Fatalf("class and member attachments collide")
	}

	if err := reg.Annotate("", "x", Route{}); err != registry.ErrEmptyName {
		t.Fatalf("empty owner: want ErrEmptyName, got %v", err)
	}
	if err := reg.Annotate(owner, "NoAnns"); err != nil {
		t.Fatalf("Annotate with no instances: unexpected error: %v", err)
	}
	if got := reg.AnnotationsOf(owner, "NoAnns"); got != nil {
		t.Fatalf("AnnotationsOf(NoAnns) = %v, want nil", got)
	}
}

func TestReset(t *testing.T) {
	reg := registry.New()

	if err := reg.RegisterAnnotationType(reflect.TypeOf(Route{})); err != nil {
		t.Fatalf("RegisterAnnotationType: unexpected error: %v", err)
	}
	reg.Reset()

	if reg.IsIndexed("dirpx.dev/anx/registry_test.Route") {
		t.Fatalf("IsIndexed after Reset: want false")
	}
	// Builtins are re-seeded.
	if _, ok := reg.LookupType("string"); !ok {
		t.Fatalf("LookupType(string) after Reset: builtin not re-seeded")
	}
}

func TestRegisterFacade_ConflictAndIdempotence(t *testing.T) {
	reg := registry.New()

	greet := func(name string) string { return "hello " + name }
	other := func(name string) string { return "hi " + name }

	entry := registry.Func("greet", greet)
	if err := reg.RegisterFacade("example.com/web", entry); err != nil {
		t.Fatalf("RegisterFacade: unexpected error: %v", err)
	}
	// Identical value: idempotent.
	if err := reg.RegisterFacade("example.com/web", entry); err != nil {
		t.Fatalf("RegisterFacade idempotent: unexpected error: %v", err)
	}
	// Same name, different value: conflict.
	err := reg.RegisterFacade("example.com/web", registry.Func("greet", other))
	if !errors.Is(err, registry.ErrConflictingRegistration) {
		t.Fatalf("conflicting facade entry: want ErrConflictingRegistration, got %v", err)
	}

	if err := reg.RegisterFacade("", entry); err != registry.ErrEmptyName {
		t.Fatalf("empty package path: want ErrEmptyName, got %v", err)
	}
}

func TestFacade_LookupAndNames(t *testing.T) {
	reg := registry.New()

	version := "1.0"
	err := reg.RegisterFacade("example.com/web",
		registry.Func("greet", func() string { return "hello" }),
		registry.Var("version", &version),
		registry.Getter("port", func() int { return 8080 }),
	)
	if err != nil {
		t.Fatalf("RegisterFacade: unexpected error: %v", err)
	}

	f, ok := reg.Facade("example.com/web")
	if !ok {
		t.Fatalf("Facade(example.com/web): want hit")
	}
	if _, ok := reg.Facade("example.com/absent"); ok {
		t.Fatalf("Facade(absent): want miss")
	}

	want := []string{"greet", "version", "port$get"}
	if got := f.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	e, ok := f.Lookup("version")
	if !ok || e.Value.Kind() != reflect.Pointer {
		t.Fatalf("Lookup(version) = (%+v,%v), want pointer entry", e, ok)
	}
	if _, ok := f.Lookup("absent"); ok {
		t.Fatalf("Lookup(absent): want miss")
	}
}
