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

package apis

import (
	"errors"
	"reflect"

	"dirpx.dev/anx/sig"
)

// ErrUnsupportedShape is returned by synthetic elements for capabilities
// that do not exist for their declaration shape (e.g., the storage address
// of an accessor-backed property). Always a hard error, never approximated.
var ErrUnsupportedShape = errors.New("anx: not supported for this element shape")

// Element is one resolved index entry: a signature paired with the live
// annotation instances attached to the underlying declaration.
type Element interface {
	// Signature returns the decoded index signature of the element.
	Signature() sig.Signature
	// Annotations returns the element's live annotation instances.
	Annotations() []any
}

// Class is a resolved class element.
type Class interface {
	Element
	// Type returns the resolved owner type.
	Type() reflect.Type
}

// Callable is a resolved function or method element.
type Callable interface {
	Element
	// Name returns the declared element name.
	Name() string
	// Func returns the live callable. For methods the receiver is the
	// first parameter; for context callables the context.Context
	// parameter is part of the live type but not of ParamTypes.
	Func() reflect.Value
	// ParamTypes returns the positional live parameter types the caller
	// must satisfy: receiver first (methods), then context parameters,
	// then declared value parameters. The context.Context parameter of a
	// context callable is excluded.
	ParamTypes() []reflect.Type
	// ReturnType returns the first non-error result type, or nil when
	// the callable returns nothing (or only an error).
	ReturnType() reflect.Type
	// IsContext reports whether the callable is a context callable.
	// Context and plain callables are never interchangeable.
	IsContext() bool
}

// Property is a resolved property element: a struct field of a registered
// owner type, or a file-scoped variable/accessor pair. Synthetic
// implementations satisfy exactly this contract and fail with
// ErrUnsupportedShape beyond it.
type Property interface {
	Element
	// Name returns the declared property name.
	Name() string
	// Get reads the property value. Member properties require the
	// receiver as the single recv argument; file-scoped properties take
	// none.
	Get(recv ...any) (any, error)
	// CanSet reports whether the property is writable.
	CanSet() bool
	// Set writes the property value. Receiver rules match Get; member
	// properties require an addressable receiver (a pointer).
	Set(value any, recv ...any) error
	// Addr returns a pointer to the backing storage, or
	// ErrUnsupportedShape when the property has no reachable storage.
	Addr() (any, error)
	// Delegate returns the property's delegate value, if any. The
	// delegate is fetched lazily on first call.
	Delegate() (any, bool)
}
