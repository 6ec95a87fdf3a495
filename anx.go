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
	"errors"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/builder"
	"dirpx.dev/anx/config"
	"dirpx.dev/anx/registry"
)

// Indexed is the marker annotation type: annotation types registered via
// RegisterAnnotationType participate in indexing, and index files are
// emitted under this type's qualified name.
type Indexed struct{}

// init initializes the global anx state.
func init() {
	s := &state{cfg: config.DefaultConfig(), reg: registry.New()}
	b := builder.New()
	s.loc = b.BuildLocator(s.cfg, s.reg, nil, nil)
	s.res = b.BuildResolver(s.cfg, s.reg, nil, nil)
	s.cch = b.BuildCache(s.cfg, s.loc, s.res, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilLocator is returned when a builder returns a nil locator.
	ErrNilLocator = errors.New("anx: builder returned nil locator")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("anx: builder returned nil resolver")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("anx: builder returned nil cache")
)

// derive builds a new state from the given layers, rebuilding every
// non-pinned layer through the builder. Callers hold buildMu.
func derive(old *state, cfg apis.Config, ext any, reg apis.Registry, bld apis.Builder) *state {
	n := &state{
		cfg:  cfg,
		ext:  ext,
		reg:  reg,
		bld:  bld,
		ploc: old.ploc,
		pres: old.pres,
		pcch: old.pcch,
	}

	n.loc = old.loc
	if !old.ploc {
		n.loc = bld.BuildLocator(cfg, reg, old.loc, ext)
	}
	n.res = old.res
	if !old.pres {
		n.res = bld.BuildResolver(cfg, reg, old.res, ext)
	}
	n.cch = old.cch
	if !old.pcch {
		n.cch = bld.BuildCache(cfg, n.loc, n.res, old.cch, ext)
	}

	// Ensure non-nil layers.
	if n.loc == nil {
		panic(ErrNilLocator)
	}
	if n.res == nil {
		panic(ErrNilResolver)
	}
	if n.cch == nil {
		panic(ErrNilCache)
	}
	return n
}

// Config returns the global anx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global anx configuration to cfg.
// It rebuilds the non-pinned layers using the new configuration.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old, cfg, old.ext, old.reg, old.bld))
}

// Registry returns the global anx registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces the global anx registry and rebuilds the
// non-pinned layers over it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old, old.cfg, old.ext, reg, old.bld))
}

// Locator returns the global anx locator.
func Locator() apis.Locator {
	return st.Load().loc
}

// SetLocator sets the global anx locator and pins it.
func SetLocator(loc apis.Locator) {
	if loc == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	n := *old
	n.loc = loc
	n.ploc = true
	if !old.pcch {
		n.cch = old.bld.BuildCache(old.cfg, loc, old.res, old.cch, old.ext)
		if n.cch == nil {
			panic(ErrNilCache)
		}
	}
	st.Store(&n)
}

// Resolver returns the global anx resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global anx resolver and pins it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	n := *old
	n.res = res
	n.pres = true
	if !old.pcch {
		n.cch = old.bld.BuildCache(old.cfg, old.loc, res, old.cch, old.ext)
		if n.cch == nil {
			panic(ErrNilCache)
		}
	}
	st.Store(&n)
}

// Cache returns the global anx cache.
func Cache() apis.Cache {
	return st.Load().cch
}

// SetCache sets the global anx cache and pins it.
func SetCache(cch apis.Cache) {
	if cch == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	n := *old
	n.cch = cch
	n.pcch = true
	st.Store(&n)
}

// Builder returns the global anx builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global anx builder to b and rebuilds the
// non-pinned layers through it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old, old.cfg, old.ext, old.reg, b))
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(derive(old, old.cfg, ext, old.reg, old.bld))
}

// ExtAs returns the global anx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetAll explicitly sets all global anx state components.
//
// Nil arguments leave the corresponding component unchanged and
// rebuildable, except for ext which is always replaced. Explicitly
// provided locator/resolver/cache are pinned. This is mainly used by
// tests to get a clean deterministic state between test cases.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, loc apis.Locator, res apis.Resolver, cch apis.Cache, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nreg := old.reg
	if reg != nil {
		nreg = reg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	n := &state{cfg: ncfg, ext: ext, reg: nreg, bld: nbld}

	n.loc = loc
	n.ploc = loc != nil
	if n.loc == nil {
		n.loc = nbld.BuildLocator(ncfg, nreg, nil, ext)
	}
	n.res = res
	n.pres = res != nil
	if n.res == nil {
		n.res = nbld.BuildResolver(ncfg, nreg, nil, ext)
	}
	n.cch = cch
	n.pcch = cch != nil
	if n.cch == nil {
		n.cch = nbld.BuildCache(ncfg, n.loc, n.res, nil, ext)
	}

	if n.loc == nil {
		panic(ErrNilLocator)
	}
	if n.res == nil {
		panic(ErrNilResolver)
	}
	if n.cch == nil {
		panic(ErrNilCache)
	}
	st.Store(n)
}

// IsLocatorPinned returns whether the global anx locator is pinned.
func IsLocatorPinned() bool { return st.Load().ploc }

// UnpinLocator makes the global anx locator rebuildable again.
func UnpinLocator() { unpin(func(s *state) { s.ploc = false }) }

// IsResolverPinned returns whether the global anx resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// UnpinResolver makes the global anx resolver rebuildable again.
func UnpinResolver() { unpin(func(s *state) { s.pres = false }) }

// IsCachePinned returns whether the global anx cache is pinned.
func IsCachePinned() bool { return st.Load().pcch }

// UnpinCache makes the global anx cache rebuildable again.
func UnpinCache() { unpin(func(s *state) { s.pcch = false }) }

func unpin(mutate func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	n := *st.Load()
	mutate(&n)
	st.Store(&n)
}
