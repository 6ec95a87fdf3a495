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

// Package locate implements the resource locator: given a relative index
// directory, it aggregates every index file carrying that path across all
// registered roots. Roots are independent strategies tried in
// registration order; a failing root contributes nothing, and an empty
// aggregate is a valid result, never an error.
package locate

import (
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/anx/apis"
)

// New constructs a Locator over the given roots. The logger receives
// per-root failures at Debug; it may be nil.
func New(log *zap.Logger, roots ...apis.Root) apis.Locator {
	if log == nil {
		log = zap.NewNop()
	}
	l := &locator{log: log}
	for _, r := range roots {
		l.AddRoot(r)
	}
	return l
}

// locator aggregates resources over an append-only root list.
type locator struct {
	log *zap.Logger

	mu    sync.RWMutex
	roots []apis.Root
	names map[string]struct{}
}

// AddRoot registers an additional root. A root re-registering under an
// already-known name is ignored: generated packages self-register at init
// and may race with explicit configuration.
func (l *locator) AddRoot(r apis.Root) {
	if r == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.names == nil {
		l.names = make(map[string]struct{})
	}
	if _, ok := l.names[r.Name()]; ok {
		return
	}
	l.names[r.Name()] = struct{}{}
	l.roots = append(l.roots, r)
}

// Roots returns a snapshot of the registered roots.
func (l *locator) Roots() []apis.Root {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]apis.Root, len(l.roots))
	copy(out, l.roots)
	return out
}

// Locate aggregates resources for relDir across all roots, deduplicated
// by (source, path), preserving registration and listing order.
func (l *locator) Locate(relDir string) []apis.Resource {
	type key struct{ source, path string }
	seen := make(map[key]struct{})

	var out []apis.Resource
	for _, r := range l.Roots() {
		resources := r.Resources(relDir)
		if len(resources) == 0 {
			l.log.Debug("anx: root contributed no index resources",
				zap.String("root", r.Name()), zap.String("dir", relDir))
			continue
		}
		for _, res := range resources {
			k := key{res.Source, res.Path}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, res)
		}
	}
	return out
}
