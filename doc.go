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

// Package anx provides a global, process-wide enumeration service for
// annotated program elements.
//
// anx answers "give me every function/property/class carrying annotation
// A" at run time, without scanning anything: a compile-time tool emits
// one small index file per (marker, annotation) pair, one signature line
// per annotated element, and generated registration code makes the
// referenced declarations reachable. anx locates the index files across
// all registered roots (embedded filesystems, directories, zip archives),
// decodes the lines, resolves them to live reflect handles, and invokes
// them with signature-compatible argument lists.
//
// # Design
//
// The core of anx is a read-mostly global snapshot (state). The snapshot
// holds six things:
//
//   - Config: enumeration knobs (diagnostics logger, index path prefix,
//     descriptor nesting guard).
//
//   - Registry: the process-wide registration table. Generated code
//     registers owner types by qualified name, annotation types
//     participating in indexing, annotation attachments for class and
//     member elements, and package facades: symbol tables standing in
//     for file-scoped declarations that Go reflection cannot reach.
//
//   - Locator: the aggregate over index roots. Each root is an
//     independent strategy (filesystem tree, ad-hoc zip archive,
//     externally owned archive reader) tried in registration order; a
//     failing root contributes nothing and never fails the pipeline.
//
//   - Resolver: the lookup engine turning decoded signatures into live
//     elements. Ordinary member lookup runs first (methods and struct
//     fields of registered owner types, matched by name plus exact
//     positional erased parameter types); file-scoped declarations fall
//     back to the owner package's facade, where properties without a
//     reachable backing variable are reconstructed as synthetic shims
//     from their registered accessors.
//
//   - Cache: the enumeration cache. One immutable element list per
//     annotation qualified name, populated at most once per process,
//     published atomically, re-checked against each element's live
//     annotation set before inclusion.
//
//   - Builder: a pluggable factory constructing Locator, Resolver and
//     Cache for a given Config.
//
// All of these live inside a single immutable struct called state. The
// package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in, so queries are lock-free on the hot
// path and concurrent callers always see a consistent snapshot.
//
// # Querying
//
//	elements, err := anx.ElementsWith(reflect.TypeFor[Route]())
//	routes, err := anx.FunctionsWith("example.com/web.Route")
//	results, err := anx.RunWith(Route{Method: "GET"}, server)
//
// Queries accept an annotation type handle, a qualified-name string, or
// a live annotation instance (narrowing by value equality). The
// annotation type must have been registered with RegisterAnnotationType;
// querying an unregistered annotation fails fast with a descriptive
// error rather than silently returning nothing.
//
// Plain and context callables are strictly isolated: FunctionsWith and
// RunWith never see context callables, ContextFunctionsWith and
// RunWithContext never see plain ones, and the invocation layer enforces
// the same split.
//
// # Error model
//
// Everything that legitimately occurs at scale across a merged
// multi-module index (lines referencing classes absent from this
// process, drifted builds, unreadable roots) is recovered locally,
// logged through the configured zap logger, and skipped. Everything that
// indicates programmer misuse (querying an unregistered annotation,
// invoking a context callable synchronously) fails fast and loud.
// Failures inside invoked callables belong to the caller: the callee's
// error is surfaced directly and never wrapped.
//
// # Pinning
//
// SetLocator, SetResolver and SetCache overwrite a layer in the snapshot
// and "pin" it: later SetConfig/SetBuilder calls will not rebuild that
// layer until the corresponding Unpin call. SetAll is the hard-reset API
// used by tests to get a deterministic state between cases.
package anx
