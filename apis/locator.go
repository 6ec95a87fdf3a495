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

import "io"

// Resource is one located index file. Open must be callable at most once
// per need and returns an independent reader; implementations backed by
// ad-hoc archive handles capture the content so the handle never leaks.
type Resource struct {
	// Source names the contributing root, for diagnostics.
	Source string
	// Path is the resource path within its root.
	Path string
	// Open returns the resource content.
	Open func() (io.ReadCloser, error)
}

// Root is one index root strategy: a filesystem tree, an archive, or any
// other container of index files. Roots are tried in registration order
// and fail independently: a root that cannot contribute returns nothing.
type Root interface {
	// Name identifies the root in diagnostics and for deduplication.
	Name() string
	// Resources returns one Resource per index file under relDir.
	// Errors are root-local: a failing root returns an empty slice.
	Resources(relDir string) []Resource
}

// Locator aggregates index resources across all registered roots.
// Locate never fails: zero resources for an annotation is a valid,
// common case.
type Locator interface {
	// Locate returns all resources carrying index entries under relDir,
	// across all roots, deduplicated by (source, path), in registration
	// order.
	Locate(relDir string) []Resource
	// AddRoot registers an additional root. Roots registering under an
	// already-known name are ignored.
	AddRoot(r Root)
	// Roots returns a snapshot of the registered roots.
	Roots() []Root
}
