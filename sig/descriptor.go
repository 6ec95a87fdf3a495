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

package sig

import (
	"fmt"
	"reflect"
	"strings"

	uref "dirpx.dev/anx/utils/reflect"
)

// Primitive descriptor codes.
const (
	CodeBool    = 'Z' // bool
	CodeInt8    = 'B' // int8
	CodeInt16   = 'S' // int16
	CodeInt32   = 'C' // int32 (rune)
	CodeInt     = 'I' // int
	CodeInt64   = 'J' // int64
	CodeFloat32 = 'F' // float32
	CodeFloat64 = 'D' // float64
)

// DefaultMaxSliceDepth bounds '[' nesting while tokenizing a descriptor.
const DefaultMaxSliceDepth = 8

// primByCode maps primitive codes to their reflect types.
var primByCode = map[byte]reflect.Type{
	CodeBool:    reflect.TypeOf(false),
	CodeInt8:    reflect.TypeOf(int8(0)),
	CodeInt16:   reflect.TypeOf(int16(0)),
	CodeInt32:   reflect.TypeOf(int32(0)),
	CodeInt:     reflect.TypeOf(int(0)),
	CodeInt64:   reflect.TypeOf(int64(0)),
	CodeFloat32: reflect.TypeOf(float32(0)),
	CodeFloat64: reflect.TypeOf(float64(0)),
}

// codeByKind is the inverse mapping used while encoding. Only unnamed
// builtins encode to a primitive code; a defined type such as
// "type Port int" encodes as a named token.
var codeByKind = map[reflect.Kind]byte{
	reflect.Bool:    CodeBool,
	reflect.Int8:    CodeInt8,
	reflect.Int16:   CodeInt16,
	reflect.Int32:   CodeInt32,
	reflect.Int:     CodeInt,
	reflect.Int64:   CodeInt64,
	reflect.Float32: CodeFloat32,
	reflect.Float64: CodeFloat64,
}

// Token is one decoded descriptor element: SliceDepth levels of "[]"
// around either a primitive code or a named-type reference.
type Token struct {
	// SliceDepth is the number of leading '[' prefixes.
	SliceDepth int
	// Prim is the primitive code, or 0 for named tokens.
	Prim byte
	// Named is the qualified type name for "L...;" tokens.
	Named string
}

// String re-encodes the token.
func (t Token) String() string {
	var b strings.Builder
	for i := 0; i < t.SliceDepth; i++ {
		b.WriteByte('[')
	}
	if t.Prim != 0 {
		b.WriteByte(t.Prim)
	} else {
		b.WriteByte('L')
		b.WriteString(t.Named)
		b.WriteByte(';')
	}
	return b.String()
}

// PrimType returns the reflect type of a primitive token, or nil for
// named tokens. Slice nesting is not applied here.
func (t Token) PrimType() reflect.Type {
	if t.Prim == 0 {
		return nil
	}
	return primByCode[t.Prim]
}

// ParseDescriptor tokenizes a descriptor left-to-right. maxSliceDepth <= 0
// selects DefaultMaxSliceDepth. An empty descriptor yields no tokens.
// The result is lexical only: named tokens are not resolved to types.
func ParseDescriptor(desc string, maxSliceDepth int) ([]Token, error) {
	if maxSliceDepth <= 0 {
		maxSliceDepth = DefaultMaxSliceDepth
	}
	var tokens []Token
	for i := 0; i < len(desc); {
		tok, n, err := parseToken(desc[i:], maxSliceDepth)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at offset %d", err, desc, i)
		}
		tokens = append(tokens, tok)
		i += n
	}
	return tokens, nil
}

// parseToken consumes one token from the head of s.
func parseToken(s string, maxSliceDepth int) (Token, int, error) {
	depth := 0
	i := 0
	for i < len(s) && s[i] == '[' {
		depth++
		if depth > maxSliceDepth {
			return Token{}, 0, fmt.Errorf("%w: slice nesting exceeds %d", ErrMalformedDescriptor, maxSliceDepth)
		}
		i++
	}
	if i >= len(s) {
		return Token{}, 0, fmt.Errorf("%w: dangling slice prefix", ErrMalformedDescriptor)
	}
	switch c := s[i]; {
	case c == 'L':
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return Token{}, 0, fmt.Errorf("%w: unterminated or empty named token", ErrMalformedDescriptor)
		}
		name := s[i+1 : i+end]
		return Token{SliceDepth: depth, Named: name}, i + end + 1, nil
	case primByCode[c] != nil:
		return Token{SliceDepth: depth, Prim: c}, i + 1, nil
	default:
		return Token{}, 0, fmt.Errorf("%w: unknown code %q", ErrMalformedDescriptor, c)
	}
}

// EncodeParams encodes an ordered parameter type list into a descriptor.
// Pointer parameters erase to their element type. Unnamed non-slice types
// (maps, funcs, anonymous structs) have no encoding and fail the whole
// parameter list.
func EncodeParams(params []reflect.Type) (string, error) {
	var b strings.Builder
	for _, p := range params {
		if err := appendType(&b, p, 0); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// EncodeType encodes a single type into its descriptor token.
func EncodeType(t reflect.Type) (string, error) {
	var b strings.Builder
	if err := appendType(&b, t, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func appendType(b *strings.Builder, t reflect.Type, depth int) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrUnencodableType)
	}
	if depth > DefaultMaxSliceDepth {
		return fmt.Errorf("%w: slice nesting exceeds %d", ErrUnencodableType, DefaultMaxSliceDepth)
	}
	erased, err := uref.Erase(t, 0)
	if err != nil {
		return err
	}
	t = erased

	// Unnamed builtins with a primitive code.
	if t.PkgPath() == "" && t.Name() != "" {
		if code, ok := codeByKind[t.Kind()]; ok {
			b.WriteByte(code)
			return nil
		}
	}
	// Unnamed slices recurse with a '[' prefix.
	if t.Kind() == reflect.Slice && t.Name() == "" {
		b.WriteByte('[')
		return appendType(b, t.Elem(), depth+1)
	}
	// Everything else must be a named type.
	name, err := uref.QualifiedName(t)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnencodableType, t)
	}
	b.WriteByte('L')
	b.WriteString(name)
	b.WriteByte(';')
	return nil
}
