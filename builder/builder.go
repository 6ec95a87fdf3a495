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

package builder

import (
	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/cache"
	"dirpx.dev/anx/locate"
	"dirpx.dev/anx/resolve"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildLocator builds a new apis.Locator based on the provided
// configuration. If a pre-existing locator is provided, its roots are
// migrated into the new locator.
func (b *builder) BuildLocator(cfg apis.Config, _ apis.Registry, prev apis.Locator, _ any) apis.Locator {
	loc := locate.New(cfg.Log())
	if prev != nil {
		for _, r := range prev.Roots() {
			loc.AddRoot(r)
		}
	}
	return loc
}

// BuildResolver builds a new apis.Resolver over the registry.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolve.New(reg)
}

// BuildCache builds a new apis.Cache over the locator and resolver.
// Memoized entries of a previous cache are never migrated: configuration
// or layer changes may alter enumeration results, so a rebuild starts cold.
func (b *builder) BuildCache(_ apis.Config, loc apis.Locator, res apis.Resolver, _ apis.Cache, _ any) apis.Cache {
	return cache.New(loc, res)
}
