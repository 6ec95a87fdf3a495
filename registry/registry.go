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

// Package registry implements the process-wide tables behind resolution:
// owner types by qualified name, marker-registered annotation types,
// annotation attachments, and package facades. Registration normally
// happens from generated init code; all tables tolerate concurrent reads
// and writes.
package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/anx/apis"
	uref "dirpx.dev/anx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("anx(registry): nil reflect.Type provided")
	// ErrNotNamed is returned when the provided type has no qualified name.
	ErrNotNamed = errors.New("anx(registry): type has no qualified name")
	// ErrEmptyName is returned when an empty owner or symbol name is provided.
	ErrEmptyName = errors.New("anx(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different value.
	ErrConflictingRegistration = errors.New("anx(registry): conflicting registration")
)

// New constructs an empty Registry pre-seeded with the builtin named
// types a descriptor may reference (string, unsigned integers, error, ...).
func New() apis.Registry {
	r := &registry{}
	r.seedBuiltins()
	return r
}

// registry is the apis.Registry implementation: sync.Map tables for the
// read-mostly fast path, one mutex guarding write-side consistency.
type registry struct {
	// mu guards write-side consistency across all tables.
	mu sync.Mutex
	// types maps qualified name to reflect.Type.
	types sync.Map // map[string]reflect.Type
	// markers holds annotation qualified names opted into indexing.
	markers sync.Map // map[string]struct{}
	// attachments maps "owner\x00member" to []any annotation instances.
	attachments sync.Map // map[string][]any
	// facades maps package path to *facade.
	facades sync.Map // map[string]*facade
}

// builtinTypes are the named types available to descriptors without
// explicit registration. Primitive-coded types never reach this table.
var builtinTypes = []reflect.Type{
	reflect.TypeOf(""),
	reflect.TypeOf(uint(0)),
	reflect.TypeOf(uint8(0)),
	reflect.TypeOf(uint16(0)),
	reflect.TypeOf(uint32(0)),
	reflect.TypeOf(uint64(0)),
	reflect.TypeOf(uintptr(0)),
	reflect.TypeOf(complex64(0)),
	reflect.TypeOf(complex128(0)),
	reflect.TypeOf((*error)(nil)).Elem(),
}

func (r *registry) seedBuiltins() {
	for _, t := range builtinTypes {
		name, err := uref.QualifiedName(t)
		if err != nil {
			continue
		}
		r.types.Store(name, t)
	}
}

// RegisterType registers t under its derived qualified name.
// It is idempotent for the same type.
func (r *registry) RegisterType(t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	erased, err := uref.Erase(t, 0)
	if err != nil {
		return err
	}
	name, err := uref.QualifiedName(erased)
	if err != nil {
		return ErrNotNamed
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.types.Load(name); ok {
		if old.(reflect.Type) == erased {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.types.Load(name); ok {
		if old.(reflect.Type) == erased {
			return nil
		}
		return ErrConflictingRegistration
	}
	r.types.Store(name, erased)
	return nil
}

// LookupType returns a registered type by qualified name.
func (r *registry) LookupType(qname string) (reflect.Type, bool) {
	if qname == "" {
		return nil, false
	}
	if v, ok := r.types.Load(qname); ok {
		return v.(reflect.Type), true
	}
	return nil, false
}

// RegisterAnnotationType opts an annotation type into indexing and makes
// it resolvable as a type, too.
func (r *registry) RegisterAnnotationType(t reflect.Type) error {
	if err := r.RegisterType(t); err != nil {
		return err
	}
	erased, _ := uref.Erase(t, 0)
	name, _ := uref.QualifiedName(erased)
	r.markers.Store(name, struct{}{})
	return nil
}

// IsIndexed reports whether the annotation qualified name is marker-registered.
func (r *registry) IsIndexed(qname string) bool {
	_, ok := r.markers.Load(qname)
	return ok
}

// attachmentKey builds the attachments table key. NUL cannot occur in a
// qualified name or member name.
func attachmentKey(owner, member string) string {
	return owner + "\x00" + member
}

// Annotate attaches live annotation instances to a class element
// (member == "") or a member element of owner. Attachments accumulate.
func (r *registry) Annotate(owner, member string, anns ...any) error {
	if owner == "" {
		return ErrEmptyName
	}
	if len(anns) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := attachmentKey(owner, member)
	var existing []any
	if v, ok := r.attachments.Load(key); ok {
		existing = v.([]any)
	}
	merged := make([]any, 0, len(existing)+len(anns))
	merged = append(merged, existing...)
	merged = append(merged, anns...)
	r.attachments.Store(key, merged)
	return nil
}

// AnnotationsOf returns the attachments of a class or member element.
func (r *registry) AnnotationsOf(owner, member string) []any {
	if v, ok := r.attachments.Load(attachmentKey(owner, member)); ok {
		return v.([]any)
	}
	return nil
}

// Reset clears all tables and re-seeds builtins.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = sync.Map{}
	r.markers = sync.Map{}
	r.attachments = sync.Map{}
	r.facades = sync.Map{}
	r.seedBuiltins()
}
