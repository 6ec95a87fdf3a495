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

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/anx/apis"
)

// Facade role suffixes. The resolver mirrors these when reconstructing
// file-scoped declarations.
const (
	SuffixGet         = "$get"
	SuffixSet         = "$set"
	SuffixDelegate    = "$delegate"
	SuffixAnnotations = "$annotations"
)

// facade is the symbol table of one package's file-scoped declarations.
type facade struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]apis.FacadeEntry
}

func newFacade() *facade {
	return &facade{entries: make(map[string]apis.FacadeEntry)}
}

// Lookup returns the entry registered under name.
func (f *facade) Lookup(name string) (apis.FacadeEntry, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.entries[name]
	return e, ok
}

// Names returns all entry names in registration order.
func (f *facade) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *facade) add(entries []apis.FacadeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entries {
		if e.Name == "" {
			return ErrEmptyName
		}
		if !e.Value.IsValid() {
			return fmt.Errorf("%w: facade entry %q has no value", ErrNilType, e.Name)
		}
		if old, ok := f.entries[e.Name]; ok {
			// Idempotent only for the identical value.
			if old.Value != e.Value {
				return fmt.Errorf("%w: facade entry %q", ErrConflictingRegistration, e.Name)
			}
			continue
		}
		f.entries[e.Name] = e
		f.order = append(f.order, e.Name)
	}
	return nil
}

// RegisterFacade registers file-scoped symbols of a package. Entries
// accumulate across calls.
func (r *registry) RegisterFacade(pkgPath string, entries ...apis.FacadeEntry) error {
	if pkgPath == "" {
		return ErrEmptyName
	}
	v, _ := r.facades.LoadOrStore(pkgPath, newFacade())
	return v.(*facade).add(entries)
}

// Facade returns the facade of a package path.
func (r *registry) Facade(pkgPath string) (apis.Facade, bool) {
	if v, ok := r.facades.Load(pkgPath); ok {
		return v.(*facade), true
	}
	return nil, false
}

// Func builds a plain function facade entry.
func Func(name string, fn any, anns ...any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name, Value: reflect.ValueOf(fn), Annotations: anns}
}

// CtxFunc builds a context-function facade entry. The live func's first
// parameter must be a context.Context.
func CtxFunc(name string, fn any, anns ...any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name, Value: reflect.ValueOf(fn), IsContext: true, Annotations: anns}
}

// Var builds a field-backed property entry from a pointer to the
// package-level variable.
func Var(name string, ptr any, anns ...any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name, Value: reflect.ValueOf(ptr), Annotations: anns}
}

// Getter builds the "$get" accessor entry of a property without a
// reachable backing field.
func Getter(name string, fn any, anns ...any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name + SuffixGet, Value: reflect.ValueOf(fn), Annotations: anns}
}

// Setter builds the "$set" accessor entry of a mutable property.
func Setter(name string, fn any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name + SuffixSet, Value: reflect.ValueOf(fn)}
}

// Delegate builds the "$delegate" entry. v may be the delegate itself or
// a nullary producer func, fetched lazily on first use.
func Delegate(name string, v any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name + SuffixDelegate, Value: reflect.ValueOf(v)}
}

// Annotations builds the "$annotations" holder entry: when present it
// overrides the per-entry annotations of the property's accessors.
func Annotations(name string, anns ...any) apis.FacadeEntry {
	return apis.FacadeEntry{Name: name + SuffixAnnotations, Value: reflect.ValueOf(struct{}{}), Annotations: anns}
}
