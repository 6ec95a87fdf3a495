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
	"archive/zip"
	"io/fs"
	"reflect"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/locate"
)

// Registration surface. Generated index-registration code calls these
// from package init functions; applications may also call them directly.
// All of them act on the current global registry/locator and are safe for
// concurrent use.

// RegisterType registers an owner or parameter type under its derived
// qualified name so index descriptors can resolve it.
func RegisterType(t reflect.Type) error {
	return st.Load().reg.RegisterType(t)
}

// RegisterTypeFor registers the type of T.
func RegisterTypeFor[T any]() error {
	return RegisterType(reflect.TypeFor[T]())
}

// RegisterAnnotationType opts an annotation type into indexing. Querying
// an annotation type that was never registered fails fast.
func RegisterAnnotationType(t reflect.Type) error {
	return st.Load().reg.RegisterAnnotationType(t)
}

// RegisterAnnotationTypeFor registers the annotation type T.
func RegisterAnnotationTypeFor[T any]() error {
	return RegisterAnnotationType(reflect.TypeFor[T]())
}

// Annotate attaches live annotation instances to a class element
// (member == "") or a member element of the owner qualified name.
func Annotate(owner, member string, anns ...any) error {
	return st.Load().reg.Annotate(owner, member, anns...)
}

// RegisterFacade registers file-scoped symbols of a package; see
// apis.FacadeEntry for the naming convention and the registry package for
// entry constructors.
func RegisterFacade(pkgPath string, entries ...apis.FacadeEntry) error {
	return st.Load().reg.RegisterFacade(pkgPath, entries...)
}

// AddRoot registers an fs.FS index root (an embedded tree, os.DirFS, or
// any other filesystem).
func AddRoot(name string, fsys fs.FS) {
	st.Load().loc.AddRoot(locate.FSRoot(name, fsys))
}

// AddArchive registers a zip archive path as an index root. The archive
// is opened ad hoc on every location pass and always closed afterwards.
func AddArchive(zipPath string) {
	st.Load().loc.AddRoot(locate.ArchiveRoot(zipPath))
}

// AddArchiveReader registers an archive someone else already opened. The
// reader is never closed by anx.
func AddArchiveReader(name string, r *zip.Reader) {
	st.Load().loc.AddRoot(locate.ArchiveReaderRoot(name, r))
}
