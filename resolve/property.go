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

package resolve

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/registry"
	"dirpx.dev/anx/sig"
)

// memberProperty resolves a property signature against a struct field of
// a registered owner type.
func (r *resolver) memberProperty(s sig.Property, t reflect.Type, cfg apis.Config) (apis.Element, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrKindMismatch, s.OwnerName)
	}
	field, ok := t.FieldByName(s.PropName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMemberNotFound, s.OwnerName, s.PropName)
	}
	// The descriptor prefix, when present, must name the owner.
	if s.Descriptor != "" {
		want, err := r.resolveTokens(s.Descriptor, cfg)
		if err != nil {
			return nil, err
		}
		if len(want) != 1 || want[0] != t {
			return nil, fmt.Errorf("%w: %s.%s", ErrKindMismatch, s.OwnerName, s.PropName)
		}
	}
	return &memberProperty{
		s:     s,
		owner: t,
		index: field.Index,
		anns:  r.reg.AnnotationsOf(s.OwnerName, s.PropName),
	}, nil
}

// facadeProperty resolves a file-scoped property from facade symbols. A
// registered backing pointer selects the field-backed shim; otherwise a
// getter (and optional setter) selects the accessor-backed shim. The
// selection is capability-based, not inheritance-based.
func (r *resolver) facadeProperty(s sig.Property, f apis.Facade, _ apis.Config) (apis.Element, error) {
	name := s.PropName
	anns := facadeAnnotations(f, name)

	getter, hasGetter := facadeFuncEntry(f, name+registry.SuffixGet)
	setter, hasSetter := facadeFuncEntry(f, name+registry.SuffixSet)
	delegate := newDelegate(f, name)

	if entry, ok := f.Lookup(name); ok && entry.Value.Kind() == reflect.Pointer {
		if anns == nil {
			anns = entry.Annotations
		}
		return &fieldProperty{
			s:        s,
			name:     name,
			ptr:      entry.Value,
			getter:   getter,
			setter:   setter,
			delegate: delegate,
			anns:     anns,
		}, nil
	}
	if hasGetter {
		return &accessorProperty{
			s:        s,
			name:     name,
			getter:   getter,
			setter:   setter,
			hasSet:   hasSetter,
			delegate: delegate,
			anns:     anns,
		}, nil
	}
	return nil, fmt.Errorf("%w: facade property %s", ErrMemberNotFound, name)
}

// facadeAnnotations prefers the "$annotations" holder entry, falling back
// to the getter entry's own annotations.
func facadeAnnotations(f apis.Facade, name string) []any {
	if holder, ok := f.Lookup(name + registry.SuffixAnnotations); ok {
		return holder.Annotations
	}
	if get, ok := f.Lookup(name + registry.SuffixGet); ok {
		return get.Annotations
	}
	return nil
}

func facadeFuncEntry(f apis.Facade, name string) (reflect.Value, bool) {
	entry, ok := f.Lookup(name)
	if !ok || entry.Value.Kind() != reflect.Func {
		return reflect.Value{}, false
	}
	return entry.Value, true
}

// delegate lazily materializes a property's "$delegate" symbol: either
// the delegate value itself or a nullary producer invoked once.
type delegate struct {
	once  sync.Once
	entry reflect.Value
	ok    bool
	value any
}

func newDelegate(f apis.Facade, name string) *delegate {
	entry, ok := f.Lookup(name + registry.SuffixDelegate)
	if !ok {
		return &delegate{}
	}
	return &delegate{entry: entry.Value, ok: true}
}

func (d *delegate) get() (any, bool) {
	if !d.ok {
		return nil, false
	}
	d.once.Do(func() {
		v := d.entry
		if v.Kind() == reflect.Func && v.Type().NumIn() == 0 && v.Type().NumOut() >= 1 {
			v = v.Call(nil)[0]
		}
		d.value = v.Interface()
	})
	return d.value, true
}

// memberProperty is an ordinary struct-field property.
type memberProperty struct {
	s     sig.Property
	owner reflect.Type
	index []int
	anns  []any
}

var _ apis.Property = (*memberProperty)(nil)

func (p *memberProperty) Signature() sig.Signature { return p.s }
func (p *memberProperty) Annotations() []any       { return p.anns }
func (p *memberProperty) Name() string             { return p.s.PropName }
func (p *memberProperty) CanSet() bool             { return true }
func (p *memberProperty) Delegate() (any, bool)    { return nil, false }

// Get reads the field from the receiver, which may be a value or pointer.
func (p *memberProperty) Get(recv ...any) (any, error) {
	rv, err := p.receiver(recv)
	if err != nil {
		return nil, err
	}
	return rv.FieldByIndex(p.index).Interface(), nil
}

// Set writes the field; the receiver must be a pointer to the owner type.
func (p *memberProperty) Set(value any, recv ...any) error {
	rv, err := p.receiver(recv)
	if err != nil {
		return err
	}
	field := rv.FieldByIndex(p.index)
	if !field.CanSet() {
		return fmt.Errorf("%w: receiver for %s.%s must be a pointer",
			ErrKindMismatch, p.s.OwnerName, p.s.PropName)
	}
	fv := reflect.ValueOf(value)
	if value == nil {
		fv = reflect.Zero(field.Type())
	}
	if !fv.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("%w: cannot assign %T to %s.%s",
			ErrKindMismatch, value, p.s.OwnerName, p.s.PropName)
	}
	field.Set(fv)
	return nil
}

// Addr is unsupported without a bound receiver.
func (p *memberProperty) Addr() (any, error) {
	return nil, fmt.Errorf("%w: member property %s.%s has no unbound storage address",
		apis.ErrUnsupportedShape, p.s.OwnerName, p.s.PropName)
}

func (p *memberProperty) receiver(recv []any) (reflect.Value, error) {
	if len(recv) != 1 || recv[0] == nil {
		return reflect.Value{}, fmt.Errorf("%w: member property %s.%s requires a receiver",
			ErrKindMismatch, p.s.OwnerName, p.s.PropName)
	}
	rv := reflect.ValueOf(recv[0])
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Type() != p.owner {
		return reflect.Value{}, fmt.Errorf("%w: receiver %T is not %s",
			ErrKindMismatch, recv[0], p.s.OwnerName)
	}
	return rv, nil
}

// fieldProperty is a file-scoped property whose backing variable pointer
// was registered. The pointer is the authoritative storage; discovered
// accessors are kept for access-path uniformity.
type fieldProperty struct {
	s        sig.Property
	name     string
	ptr      reflect.Value
	getter   reflect.Value
	setter   reflect.Value
	delegate *delegate
	anns     []any
}

var _ apis.Property = (*fieldProperty)(nil)

func (p *fieldProperty) Signature() sig.Signature { return p.s }
func (p *fieldProperty) Annotations() []any       { return p.anns }
func (p *fieldProperty) Name() string             { return p.name }
func (p *fieldProperty) CanSet() bool             { return true }
func (p *fieldProperty) Delegate() (any, bool)    { return p.delegate.get() }

func (p *fieldProperty) Get(recv ...any) (any, error) {
	if len(recv) != 0 {
		return nil, fmt.Errorf("%w: file-scoped property %s takes no receiver",
			ErrKindMismatch, p.name)
	}
	if p.getter.IsValid() {
		return p.getter.Call(nil)[0].Interface(), nil
	}
	return p.ptr.Elem().Interface(), nil
}

func (p *fieldProperty) Set(value any, recv ...any) error {
	if len(recv) != 0 {
		return fmt.Errorf("%w: file-scoped property %s takes no receiver",
			ErrKindMismatch, p.name)
	}
	elem := p.ptr.Elem()
	fv := reflect.ValueOf(value)
	if value == nil {
		fv = reflect.Zero(elem.Type())
	}
	if !fv.Type().AssignableTo(elem.Type()) {
		return fmt.Errorf("%w: cannot assign %T to property %s", ErrKindMismatch, value, p.name)
	}
	if p.setter.IsValid() {
		p.setter.Call([]reflect.Value{fv})
		return nil
	}
	elem.Set(fv)
	return nil
}

func (p *fieldProperty) Addr() (any, error) {
	return p.ptr.Interface(), nil
}

// accessorProperty is the synthetic shim for a file-scoped property with
// no reachable backing field: it satisfies the minimal property contract
// through its discovered accessors and refuses everything beyond it.
type accessorProperty struct {
	s        sig.Property
	name     string
	getter   reflect.Value
	setter   reflect.Value
	hasSet   bool
	delegate *delegate
	anns     []any
}

var _ apis.Property = (*accessorProperty)(nil)

func (p *accessorProperty) Signature() sig.Signature { return p.s }
func (p *accessorProperty) Annotations() []any       { return p.anns }
func (p *accessorProperty) Name() string             { return p.name }
func (p *accessorProperty) CanSet() bool             { return p.hasSet }
func (p *accessorProperty) Delegate() (any, bool)    { return p.delegate.get() }

func (p *accessorProperty) Get(recv ...any) (any, error) {
	if len(recv) != 0 {
		return nil, fmt.Errorf("%w: file-scoped property %s takes no receiver",
			ErrKindMismatch, p.name)
	}
	return p.getter.Call(nil)[0].Interface(), nil
}

func (p *accessorProperty) Set(value any, recv ...any) error {
	if len(recv) != 0 {
		return fmt.Errorf("%w: file-scoped property %s takes no receiver",
			ErrKindMismatch, p.name)
	}
	if !p.hasSet {
		return fmt.Errorf("%w: property %s is read-only", apis.ErrUnsupportedShape, p.name)
	}
	in := p.setter.Type().In(0)
	fv := reflect.ValueOf(value)
	if value == nil {
		fv = reflect.Zero(in)
	}
	if !fv.Type().AssignableTo(in) {
		return fmt.Errorf("%w: cannot assign %T to property %s", ErrKindMismatch, value, p.name)
	}
	p.setter.Call([]reflect.Value{fv})
	return nil
}

// Addr is explicitly unsupported: no backing storage exists.
func (p *accessorProperty) Addr() (any, error) {
	return nil, fmt.Errorf("%w: property %s has no backing storage",
		apis.ErrUnsupportedShape, p.name)
}
