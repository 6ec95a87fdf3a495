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

// Package resolve implements the lookup engine that turns decoded index
// signatures back into live elements.
//
// Resolution is layered: the owner qualified name is resolved first to a
// registered type (member elements) or to a package facade (file-scoped
// elements that ordinary reflection cannot reach). Member callables are
// matched by name plus exact positional erased-parameter comparison
// against the descriptor; file-scoped properties are reconstructed from
// facade symbols as synthetic shims, selected by capability: field-backed
// when a pointer to the backing variable was registered, accessor-backed
// otherwise.
//
// Every miss is an error for the caller to log and skip: merged
// multi-module indices routinely contain entries whose owners are not
// present in the current process.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/sig"
)

var (
	// ErrOwnerNotFound is returned when the owner qualified name resolves
	// to neither a registered type nor a package facade.
	ErrOwnerNotFound = errors.New("anx(resolve): owner not found")
	// ErrMemberNotFound is returned when the owner exists but carries no
	// matching member or facade symbol.
	ErrMemberNotFound = errors.New("anx(resolve): member not found")
	// ErrKindMismatch is returned when a declaration exists under the
	// name but its context-ness or shape contradicts the signature kind.
	ErrKindMismatch = errors.New("anx(resolve): element kind mismatch")
	// ErrUnresolvableType is returned when a descriptor references a type
	// that is not loadable; the whole signature is then unresolvable.
	ErrUnresolvableType = errors.New("anx(resolve): descriptor type not resolvable")
)

// ctxType is the erased type of the context parameter of context callables.
var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// New constructs a Resolver over the given registry.
func New(reg apis.Registry) apis.Resolver {
	return &resolver{reg: reg}
}

type resolver struct {
	reg apis.Registry
}

// Ensure resolver implements apis.Resolver.
var _ apis.Resolver = (*resolver)(nil)

// Resolve resolves s into a live element, or reports why it cannot.
func (r *resolver) Resolve(s sig.Signature, cfg apis.Config) (apis.Element, error) {
	switch s := s.(type) {
	case sig.Class:
		t, ok := r.reg.LookupType(s.OwnerName)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, s.OwnerName)
		}
		return &classElement{s: s, t: t, anns: r.reg.AnnotationsOf(s.OwnerName, "")}, nil

	case sig.Func:
		return r.resolveFunc(s, s.OwnerName, s.FuncName, s.Descriptor, false, cfg)
	case sig.ContextFunc:
		return r.resolveFunc(s, s.OwnerName, s.FuncName, s.Descriptor, true, cfg)

	case sig.Property:
		if t, ok := r.reg.LookupType(s.OwnerName); ok {
			return r.memberProperty(s, t, cfg)
		}
		if f, ok := r.reg.Facade(s.OwnerName); ok {
			return r.facadeProperty(s, f, cfg)
		}
		return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, s.OwnerName)

	default:
		return nil, fmt.Errorf("%w: unknown signature variant %T", sig.ErrMalformedLine, s)
	}
}

// resolveTokens resolves a descriptor into erased parameter types. A
// single unloadable named token fails the whole descriptor, closed.
func (r *resolver) resolveTokens(desc string, cfg apis.Config) ([]reflect.Type, error) {
	tokens, err := sig.ParseDescriptor(desc, cfg.MaxSliceDepth)
	if err != nil {
		return nil, err
	}
	types := make([]reflect.Type, 0, len(tokens))
	for _, tok := range tokens {
		t := tok.PrimType()
		if t == nil {
			named, ok := r.reg.LookupType(tok.Named)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnresolvableType, tok.Named)
			}
			t = named
		}
		for i := 0; i < tok.SliceDepth; i++ {
			t = reflect.SliceOf(t)
		}
		types = append(types, t)
	}
	return types, nil
}

// classElement is a resolved class signature.
type classElement struct {
	s    sig.Class
	t    reflect.Type
	anns []any
}

var _ apis.Class = (*classElement)(nil)

func (e *classElement) Signature() sig.Signature { return e.s }
func (e *classElement) Annotations() []any       { return e.anns }
func (e *classElement) Type() reflect.Type       { return e.t }
