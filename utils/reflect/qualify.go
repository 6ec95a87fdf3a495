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

package reflect

import (
	"errors"
	"reflect"
	"strings"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) has no name (e.g., anonymous struct, func, map).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// DefaultMaxUnwrap bounds pointer unwrapping depth in Erase.
// A value of 8 should be sufficient for all practical purposes.
const DefaultMaxUnwrap = 8

// QualifiedName returns the stable qualified name of a named type:
// "<pkg/path>.<Name>" for package-level types, or just "<Name>" for
// builtins (empty package path). Generic instantiation parameters are
// stripped: "T[int]" -> "T".
//
// Qualified names are the owner and object-type currency of the index:
// they must be identical between the encoding and the decoding process.
func QualifiedName(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrReflectNilType
	}
	name := stripTypeParams(t.Name())
	if name == "" {
		return "", ErrReflectTypeNotNamed
	}
	if p := t.PkgPath(); p != "" {
		return p + "." + name, nil
	}
	return name, nil
}

// Erase unwraps pointer types down to their element, bounded by maxUnwrap
// (DefaultMaxUnwrap when <= 0). This is the erasure used when matching a
// live parameter list against a decoded descriptor: "*Foo" and "Foo"
// erase to the same type.
func Erase(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}
	for i := 0; t.Kind() == reflect.Pointer && i < maxUnwrap; i++ {
		t = t.Elem()
	}
	return t, nil
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
