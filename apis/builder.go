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

// Builder composes Locator, Resolver and Cache from a Config.
// Implementations may migrate state from previous instances (prev*),
// or ignore them.
type Builder interface {
	// BuildLocator constructs a Locator. May migrate roots from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildLocator(cfg Config, reg Registry, prev Locator, ext any) Locator
	// BuildResolver constructs a Resolver over the registry.
	BuildResolver(cfg Config, reg Registry, prev Resolver, ext any) Resolver
	// BuildCache constructs a Cache over the locator and resolver.
	// Memoized entries are never migrated: a rebuild starts cold.
	BuildCache(cfg Config, loc Locator, res Resolver, prev Cache, ext any) Cache
}
