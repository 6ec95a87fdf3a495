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

package anx

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/invoke"
	uref "dirpx.dev/anx/utils/reflect"
)

var (
	// ErrAnnotationNotIndexed is returned when querying an annotation
	// type that was never registered with RegisterAnnotationType.
	ErrAnnotationNotIndexed = errors.New("anx: annotation type not registered for indexing")
	// ErrBadAnnotationQuery is returned when the query argument is not an
	// annotation type, qualified name, or live annotation instance.
	ErrBadAnnotationQuery = errors.New("anx: query argument is not an annotation reference")
)

// annotationQuery normalizes the three query-argument forms: a
// reflect.Type handle, a qualified-name string, or a live annotation
// instance (which additionally filters by value equality).
func annotationQuery(ann any) (qname string, inst any, err error) {
	switch a := ann.(type) {
	case nil:
		return "", nil, fmt.Errorf("%w: nil", ErrBadAnnotationQuery)
	case reflect.Type:
		qname, err = uref.QualifiedName(a)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrBadAnnotationQuery, err)
		}
		return qname, nil, nil
	case string:
		if a == "" {
			return "", nil, fmt.Errorf("%w: empty qualified name", ErrBadAnnotationQuery)
		}
		return a, nil, nil
	default:
		t, err := uref.Erase(reflect.TypeOf(ann), 0)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrBadAnnotationQuery, err)
		}
		qname, err = uref.QualifiedName(t)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrBadAnnotationQuery, err)
		}
		return qname, ann, nil
	}
}

// ElementsWith returns every resolved element carrying the annotation.
// ann may be a reflect.Type, a qualified-name string, or a live
// annotation instance; an instance narrows the result to elements
// carrying a value-equal instance. The annotation type must be
// marker-registered or the query fails fast.
func ElementsWith(ann any) ([]apis.Element, error) {
	s := st.Load()
	qname, inst, err := annotationQuery(ann)
	if err != nil {
		return nil, err
	}
	if !s.reg.IsIndexed(qname) {
		return nil, fmt.Errorf("%w: %s (register it with RegisterAnnotationType)",
			ErrAnnotationNotIndexed, qname)
	}
	elements := s.cch.ElementsFor(qname, s.cfg)
	if inst == nil {
		return elements, nil
	}
	var out []apis.Element
	for _, el := range elements {
		for _, a := range el.Annotations() {
			if reflect.DeepEqual(a, inst) {
				out = append(out, el)
				break
			}
		}
	}
	return out, nil
}

// FunctionsWith returns the plain (non-context) callables carrying the
// annotation. Context callables are never returned by this path.
func FunctionsWith(ann any) ([]apis.Callable, error) {
	return callablesWith(ann, false)
}

// ContextFunctionsWith returns the context callables carrying the
// annotation. Plain callables are never returned by this path.
func ContextFunctionsWith(ann any) ([]apis.Callable, error) {
	return callablesWith(ann, true)
}

func callablesWith(ann any, wantCtx bool) ([]apis.Callable, error) {
	elements, err := ElementsWith(ann)
	if err != nil {
		return nil, err
	}
	var out []apis.Callable
	for _, el := range elements {
		if c, ok := el.(apis.Callable); ok && c.IsContext() == wantCtx {
			out = append(out, c)
		}
	}
	return out, nil
}

// PropertiesWith returns the property elements carrying the annotation.
func PropertiesWith(ann any) ([]apis.Property, error) {
	elements, err := ElementsWith(ann)
	if err != nil {
		return nil, err
	}
	var out []apis.Property
	for _, el := range elements {
		if p, ok := el.(apis.Property); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ClassesWith returns the class elements carrying the annotation.
func ClassesWith(ann any) ([]apis.Class, error) {
	elements, err := ElementsWith(ann)
	if err != nil {
		return nil, err
	}
	var out []apis.Class
	for _, el := range elements {
		if c, ok := el.(apis.Class); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ValuesWith returns the current values of file-scoped properties
// carrying the annotation. Member properties need a receiver and are
// skipped with a diagnostic.
func ValuesWith(ann any) ([]any, error) {
	props, err := PropertiesWith(ann)
	if err != nil {
		return nil, err
	}
	log := st.Load().cfg.Log()
	var out []any
	for _, p := range props {
		v, err := p.Get()
		if err != nil {
			log.Warn("anx: skipping property value read",
				zap.String("property", p.Name()), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// RunWith invokes every plain callable carrying the annotation whose
// parameters are satisfied by args (surplus trailing arguments are
// ignored per callable), collecting results in enumeration order. A
// callee failure is surfaced directly and stops the run.
func RunWith(ann any, args ...any) ([]any, error) {
	callables, err := FunctionsWith(ann)
	if err != nil {
		return nil, err
	}
	var out []any
	for _, c := range callables {
		if !invoke.CanInvokeWith(c, args) {
			continue
		}
		v, err := invoke.Invoke(c, args)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// RunWithContext is RunWith for context callables.
func RunWithContext(ctx context.Context, ann any, args ...any) ([]any, error) {
	callables, err := ContextFunctionsWith(ann)
	if err != nil {
		return nil, err
	}
	var out []any
	for _, c := range callables {
		if !invoke.CanInvokeWith(c, args) {
			continue
		}
		v, err := invoke.InvokeContext(ctx, c, args)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ApplyWith invokes every plain callable carrying the annotation,
// requiring args to satisfy all of them: the first incompatible callable
// fails the whole call before anything runs.
func ApplyWith(ann any, args ...any) ([]any, error) {
	callables, err := FunctionsWith(ann)
	if err != nil {
		return nil, err
	}
	for _, c := range callables {
		if !invoke.CanInvokeWith(c, args) {
			return nil, fmt.Errorf("%w: %s", invoke.ErrNotInvokable, c.Name())
		}
	}
	var out []any
	for _, c := range callables {
		v, err := invoke.Invoke(c, args)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ApplyWithContext is ApplyWith for context callables.
func ApplyWithContext(ctx context.Context, ann any, args ...any) ([]any, error) {
	callables, err := ContextFunctionsWith(ann)
	if err != nil {
		return nil, err
	}
	for _, c := range callables {
		if !invoke.CanInvokeWith(c, args) {
			return nil, fmt.Errorf("%w: %s", invoke.ErrNotInvokable, c.Name())
		}
	}
	var out []any
	for _, c := range callables {
		v, err := invoke.InvokeContext(ctx, c, args)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
