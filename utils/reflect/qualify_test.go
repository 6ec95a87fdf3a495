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

package reflect_test

import (
	"reflect"
	"testing"

	uref "dirpx.dev/anx/utils/reflect"
)

type Named struct{ X int }

type Generic[T any] struct{ V T }

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		name string
		t    reflect.Type
		want string
	}{
		{"package-level type", reflect.TypeOf(Named{}), "dirpx.dev/anx/utils/reflect_test.Named"},
		{"builtin string", reflect.TypeOf(""), "string"},
		{"builtin error", reflect.TypeOf((*error)(nil)).Elem(), "error"},
		{"generic instantiation stripped", reflect.TypeOf(Generic[int]{}), "dirpx.dev/anx/utils/reflect_test.Generic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uref.QualifiedName(tt.t)
			if err != nil {
				t.Fatalf("QualifiedName(%v): unexpected error: %v", tt.t, err)
			}
			if got != tt.want {
				t.Fatalf("QualifiedName(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestQualifiedName_Errors(t *testing.T) {
	if _, err := uref.QualifiedName(nil); err != uref.ErrReflectNilType {
		t.Fatalf("nil type: want ErrReflectNilType, got %v", err)
	}
	// Pointers are unnamed; callers must erase first.
	if _, err := uref.QualifiedName(reflect.TypeOf(&Named{})); err != uref.ErrReflectTypeNotNamed {
		t.Fatalf("pointer type: want ErrReflectTypeNotNamed, got %v", err)
	}
	if _, err := uref.QualifiedName(reflect.TypeOf(struct{ A int }{})); err != uref.ErrReflectTypeNotNamed {
		t.Fatalf("anonymous struct: want ErrReflectTypeNotNamed, got %v", err)
	}
}

func TestErase(t *testing.T) {
	base := reflect.TypeOf(Named{})

	got, err := uref.Erase(reflect.TypeOf(&Named{}), 0)
	if err != nil {
		t.Fatalf("Erase(*Named): unexpected error: %v", err)
	}
	if got != base {
		t.Fatalf("Erase(*Named) = %v, want %v", got, base)
	}

	// Non-pointer types pass through unchanged.
	if got, _ := uref.Erase(base, 0); got != base {
		t.Fatalf("Erase(Named) = %v, want %v", got, base)
	}

	// maxUnwrap bounds the unwrapping: **Named with 1 unwrap stays *Named.
	var pp **Named
	got, err = uref.Erase(reflect.TypeOf(pp), 1)
	if err != nil {
		t.Fatalf("Erase(**Named, 1): unexpected error: %v", err)
	}
	if got.Kind() != reflect.Pointer {
		t.Fatalf("Erase(**Named, 1) = %v, want a pointer type", got)
	}

	if _, err := uref.Erase(nil, 0); err != uref.ErrReflectNilType {
		t.Fatalf("nil type: want ErrReflectNilType, got %v", err)
	}
}
