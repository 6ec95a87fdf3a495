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
	"sync"
	"sync/atomic"

	"dirpx.dev/anx/apis"
)

// state is one immutable snapshot of the global anx components. Readers
// load the current pointer and never mutate it; writers assemble a brand
// new state under buildMu and publish it atomically.
type state struct {
	// cfg is the enumeration configuration.
	cfg apis.Config
	// ext is an opaque extension payload passed down to the builder.
	ext any
	// reg is the process-wide registration table. It is shared across
	// snapshots: registrations are durable, not snapshot-scoped.
	reg apis.Registry
	// loc aggregates index roots.
	loc apis.Locator
	// res is the lookup engine.
	res apis.Resolver
	// cch is the enumeration cache.
	cch apis.Cache
	// bld constructs loc/res/cch on rebuilds.
	bld apis.Builder

	// ploc/pres/pcch mark explicitly set ("pinned") layers that rebuilds
	// must not replace.
	ploc bool
	pres bool
	pcch bool
}

var (
	// st holds the current state snapshot.
	st atomic.Pointer[state]
	// buildMu serializes state derivation; reads never take it.
	buildMu sync.Mutex
)
