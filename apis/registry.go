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

import "reflect"

// FacadeEntry is one symbol of a package facade: the registration-time
// stand-in for a file-scoped declaration that reflection cannot reach.
//
// Naming convention, mirrored by the resolver:
//
//	"Name"           plain function value, or pointer to a backing variable
//	"name$get"       getter of an accessor-backed property
//	"name$set"       setter of an accessor-backed property
//	"name$delegate"  delegate value (or nullary producer) of a property
//	"name$annotations" annotation holder overriding per-entry annotations
type FacadeEntry struct {
	// Name is the symbol name, possibly with a role suffix.
	Name string
	// Value is the registered func value, pointer, or delegate payload.
	Value reflect.Value
	// IsContext marks context callables (func entries only).
	IsContext bool
	// Annotations are the live annotation instances of the declaration.
	Annotations []any
}

// Facade is the symbol table of one package's file-scoped declarations.
type Facade interface {
	// Lookup returns the entry registered under name.
	Lookup(name string) (FacadeEntry, bool)
	// Names returns all entry names in registration order.
	Names() []string
}

// Registry is the process-wide table backing resolution: owner types by
// qualified name, marker-registered annotation types, annotation
// attachments for class/member elements, and package facades.
// Implementations must be safe for concurrent use.
type Registry interface {
	// RegisterType registers an owner or parameter type under its derived
	// qualified name. Idempotent for the same type.
	RegisterType(t reflect.Type) error
	// LookupType returns a registered type by qualified name.
	LookupType(qname string) (reflect.Type, bool)

	// RegisterAnnotationType opts an annotation type into indexing.
	RegisterAnnotationType(t reflect.Type) error
	// IsIndexed reports whether the annotation qualified name is
	// marker-registered.
	IsIndexed(qname string) bool

	// Annotate attaches live annotation instances to a class element
	// (member == "") or to a member element of owner.
	Annotate(owner, member string, anns ...any) error
	// AnnotationsOf returns the attachments of a class or member element.
	AnnotationsOf(owner, member string) []any

	// RegisterFacade registers file-scoped symbols of a package. Entries
	// accumulate across calls; re-registering a name with a different
	// value is a conflict.
	RegisterFacade(pkgPath string, entries ...FacadeEntry) error
	// Facade returns the facade of a package path.
	Facade(pkgPath string) (Facade, bool)

	// Reset clears all tables.
	Reset()
}
