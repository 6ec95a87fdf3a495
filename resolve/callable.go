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

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/sig"
	uref "dirpx.dev/anx/utils/reflect"
)

// callable is a resolved function or method element.
type callable struct {
	s      sig.Signature
	name   string
	fn     reflect.Value
	params []reflect.Type // live positional params, ctx excluded
	ret    reflect.Type
	isCtx  bool
	anns   []any
}

var _ apis.Callable = (*callable)(nil)

func (c *callable) Signature() sig.Signature   { return c.s }
func (c *callable) Annotations() []any         { return c.anns }
func (c *callable) Name() string               { return c.name }
func (c *callable) Func() reflect.Value        { return c.fn }
func (c *callable) ParamTypes() []reflect.Type { return c.params }
func (c *callable) ReturnType() reflect.Type   { return c.ret }
func (c *callable) IsContext() bool            { return c.isCtx }

// resolveFunc resolves a function or context-function signature: ordinary
// method lookup on a registered owner type, falling back to the package
// facade for file-scoped declarations.
func (r *resolver) resolveFunc(s sig.Signature, owner, name, desc string, isCtx bool, cfg apis.Config) (apis.Element, error) {
	want, err := r.resolveTokens(desc, cfg)
	if err != nil {
		return nil, err
	}

	if t, ok := r.reg.LookupType(owner); ok {
		return r.memberFunc(s, t, owner, name, want, isCtx, cfg)
	}
	if f, ok := r.reg.Facade(owner); ok {
		return r.facadeFunc(s, f, name, want, isCtx, cfg)
	}
	return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, owner)
}

// memberFunc matches a method by name and exact positional erased
// parameter types. The descriptor's first token is the owner type and the
// live method exposes the receiver positionally as its first parameter,
// so both sides align index-for-index after context reconstruction.
func (r *resolver) memberFunc(s sig.Signature, t reflect.Type, owner, name string, want []reflect.Type, isCtx bool, cfg apis.Config) (apis.Element, error) {
	kindErr := false
	for _, candidate := range []reflect.Type{t, reflect.PointerTo(t)} {
		m, ok := candidate.MethodByName(name)
		if !ok {
			continue
		}
		params, ret, matched := matchLive(m.Func.Type(), want, isCtx, true, cfg)
		if !matched {
			// Same name exists with the wrong context-ness or shape.
			kindErr = true
			continue
		}
		return &callable{
			s:      s,
			name:   name,
			fn:     m.Func,
			params: params,
			ret:    ret,
			isCtx:  isCtx,
			anns:   r.reg.AnnotationsOf(owner, name),
		}, nil
	}
	if kindErr {
		return nil, fmt.Errorf("%w: %s.%s", ErrKindMismatch, owner, name)
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrMemberNotFound, owner, name)
}

// facadeFunc matches a file-scoped function against the owner package's
// facade symbol table.
func (r *resolver) facadeFunc(s sig.Signature, f apis.Facade, name string, want []reflect.Type, isCtx bool, cfg apis.Config) (apis.Element, error) {
	entry, ok := f.Lookup(name)
	if !ok || entry.Value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: facade symbol %s", ErrMemberNotFound, name)
	}
	if entry.IsContext != isCtx {
		return nil, fmt.Errorf("%w: facade symbol %s", ErrKindMismatch, name)
	}
	params, ret, matched := matchLive(entry.Value.Type(), want, isCtx, false, cfg)
	if !matched {
		return nil, fmt.Errorf("%w: facade symbol %s", ErrKindMismatch, name)
	}
	return &callable{
		s:      s,
		name:   name,
		fn:     entry.Value,
		params: params,
		ret:    ret,
		isCtx:  isCtx,
		anns:   entry.Annotations,
	}, nil
}

// matchLive decides whether the live func type ft "is" the declared
// descriptor. want holds the descriptor's erased types (owner first for
// members). The live parameter list may carry more entries than the
// descriptor declares: a context.Context at the context slot when isCtx,
// and any remaining leading excess is treated as context parameters whose
// erased types are read directly from the live parameter array.
//
// On success it returns the caller-facing positional parameter types
// (live types, context.Context excluded) and the first non-error result
// type.
func matchLive(ft reflect.Type, want []reflect.Type, isCtx, hasRecv bool, cfg apis.Config) ([]reflect.Type, reflect.Type, bool) {
	live := make([]reflect.Type, ft.NumIn())
	for i := range live {
		live[i] = ft.In(i)
	}

	recvOffset := 0
	if hasRecv {
		recvOffset = 1
		if len(live) == 0 {
			return nil, nil, false
		}
	}

	// Context slot: present exactly when the signature kind says so.
	hasCtxParam := len(live) > recvOffset && live[recvOffset] == ctxType
	if hasCtxParam != isCtx {
		return nil, nil, false
	}
	if isCtx {
		live = append(live[:recvOffset:recvOffset], live[recvOffset+1:]...)
	}

	// Leading excess beyond the descriptor is context parameters.
	excess := len(live) - len(want)
	if excess < 0 {
		return nil, nil, false
	}
	if hasRecv {
		if len(want) == 0 || !erasedEqual(live[0], want[0], cfg) {
			return nil, nil, false
		}
		// Excess sits between receiver and declared value parameters.
		for i, w := range want[1:] {
			if !erasedEqual(live[1+excess+i], w, cfg) {
				return nil, nil, false
			}
		}
	} else {
		for i, w := range want {
			if !erasedEqual(live[excess+i], w, cfg) {
				return nil, nil, false
			}
		}
	}

	return live, firstResult(ft), true
}

// erasedEqual compares a live parameter type against a descriptor type.
// Descriptor types are already erased; the live side erases on the fly.
func erasedEqual(live, want reflect.Type, cfg apis.Config) bool {
	if live == want {
		return true
	}
	erased, err := uref.Erase(live, 0)
	if err != nil {
		return false
	}
	return erased == want
}

// firstResult returns the first non-error result type of ft, or nil.
func firstResult(ft reflect.Type) reflect.Type {
	errType := reflect.TypeOf((*error)(nil)).Elem()
	for i := 0; i < ft.NumOut(); i++ {
		if ft.Out(i) != errType {
			return ft.Out(i)
		}
	}
	return nil
}
