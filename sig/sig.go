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

// Package sig implements the textual signature codec of the index.
//
// Each indexed element is described by one line:
//
//	class <ownerQName>
//	function <ownerQName> <name> <descriptor>
//	context-function <ownerQName> <name> <descriptor>
//	property <ownerQName> <name> <descriptor>
//
// The descriptor is a concatenation of type tokens, unambiguous
// left-to-right: single-letter primitive codes, a '[' slice prefix, or
// "L<qualified.name>;" for named types. For member elements the first
// token is the owner type; leading live parameters that are absent from
// the descriptor are treated by the resolver as context parameters. The
// context.Context parameter of a context-function is never encoded.
//
// Parsing is strict on shape but purely lexical: whether a named token
// resolves to a loaded type is decided later, by the resolver.
package sig

import (
	"errors"
	"fmt"
	"strings"
)

// Line keywords, one per element kind.
const (
	KeywordClass       = "class"
	KeywordFunc        = "function"
	KeywordContextFunc = "context-function"
	KeywordProperty    = "property"
)

var (
	// ErrMalformedLine is returned for lines that do not match the grammar.
	ErrMalformedLine = errors.New("anx(sig): malformed signature line")
	// ErrMalformedDescriptor is returned for descriptors that do not tokenize.
	ErrMalformedDescriptor = errors.New("anx(sig): malformed parameter descriptor")
	// ErrUnencodableType is returned when a parameter type has no descriptor form.
	ErrUnencodableType = errors.New("anx(sig): type has no descriptor encoding")
)

// Signature is the closed variant over element kinds. Exactly four
// implementations exist: Class, Func, ContextFunc and Property.
type Signature interface {
	// Owner returns the owning class qualified name, or the owning
	// package path for file-scoped elements.
	Owner() string
	// String re-encodes the signature into its index line form.
	String() string

	sealed()
}

// Class describes an indexed class (named type).
type Class struct {
	OwnerName string
}

// Func describes an indexed plain function or method.
type Func struct {
	OwnerName  string
	FuncName   string
	Descriptor string
}

// ContextFunc describes an indexed context function or method: a callable
// whose live first value parameter (after any receiver) is a
// context.Context. Never interchangeable with Func.
type ContextFunc struct {
	OwnerName  string
	FuncName   string
	Descriptor string
}

// Property describes an indexed property: a struct field of a registered
// owner type, or a file-scoped variable/accessor pair.
type Property struct {
	OwnerName  string
	PropName   string
	Descriptor string
}

func (Class) sealed()       {}
func (Func) sealed()        {}
func (ContextFunc) sealed() {}
func (Property) sealed()    {}

// Owner returns the owning qualified name.
func (s Class) Owner() string { return s.OwnerName }

// Owner returns the owning qualified name.
func (s Func) Owner() string { return s.OwnerName }

// Owner returns the owning qualified name.
func (s ContextFunc) Owner() string { return s.OwnerName }

// Owner returns the owning qualified name.
func (s Property) Owner() string { return s.OwnerName }

func (s Class) String() string { return KeywordClass + " " + s.OwnerName }

func (s Func) String() string {
	return encodeLine(KeywordFunc, s.OwnerName, s.FuncName, s.Descriptor)
}

func (s ContextFunc) String() string {
	return encodeLine(KeywordContextFunc, s.OwnerName, s.FuncName, s.Descriptor)
}

func (s Property) String() string {
	return encodeLine(KeywordProperty, s.OwnerName, s.PropName, s.Descriptor)
}

// encodeLine joins non-empty fields with single spaces. A zero-parameter
// element has an empty descriptor and therefore a three-field line.
func encodeLine(kind, owner, name, desc string) string {
	if desc == "" {
		return kind + " " + owner + " " + name
	}
	return kind + " " + owner + " " + name + " " + desc
}

// Parse decodes one index line into its Signature variant. The line must
// have the exact field count for its kind; the descriptor field may be
// absent (zero-parameter element). Blank input is a malformed line.
func Parse(line string) (Signature, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedLine)
	}
	switch kind := fields[0]; kind {
	case KeywordClass:
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		return Class{OwnerName: fields[1]}, nil

	case KeywordFunc, KeywordContextFunc, KeywordProperty:
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		desc := ""
		if len(fields) == 4 {
			desc = fields[3]
		}
		switch kind {
		case KeywordFunc:
			return Func{OwnerName: fields[1], FuncName: fields[2], Descriptor: desc}, nil
		case KeywordContextFunc:
			return ContextFunc{OwnerName: fields[1], FuncName: fields[2], Descriptor: desc}, nil
		default:
			return Property{OwnerName: fields[1], PropName: fields[2], Descriptor: desc}, nil
		}

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedLine, fields[0])
	}
}
