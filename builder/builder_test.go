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

package builder_test

import (
	"reflect"
	"testing"
	"testing/fstest"

	"dirpx.dev/anx/builder"
	"dirpx.dev/anx/config"
	"dirpx.dev/anx/locate"
	"dirpx.dev/anx/registry"
)

type Route struct{ Method string }

const routeQ = "dirpx.dev/anx/builder_test.Route"

func TestBuildLocator_MigratesRoots(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := registry.New()

	prev := b.BuildLocator(cfg, reg, nil, nil)
	prev.AddRoot(locate.FSRoot("r1", fstest.MapFS{}))
	prev.AddRoot(locate.FSRoot("r2", fstest.MapFS{}))

	next := b.BuildLocator(cfg, reg, prev, nil)
	roots := next.Roots()
	if len(roots) != 2 || roots[0].Name() != "r1" || roots[1].Name() != "r2" {
		t.Fatalf("migrated roots = %v, want [r1 r2]", roots)
	}
	// The new locator is a distinct instance: adding to it must not touch
	// the previous one.
	next.AddRoot(locate.FSRoot("r3", fstest.MapFS{}))
	if len(prev.Roots()) != 2 {
		t.Fatalf("previous locator grew to %d roots", len(prev.Roots()))
	}
}

func TestBuildCache_StartsCold(t *testing.T) {
	b := builder.New()
	reg := registry.New()
	if err := reg.RegisterAnnotationType(reflect.TypeOf(Route{})); err != nil {
		t.Fatalf("RegisterAnnotationType: %v", err)
	}
	if err := reg.RegisterFacade("example.com/web",
		registry.Func("ping", func() string { return "pong" }, Route{})); err != nil {
		t.Fatalf("RegisterFacade: %v", err)
	}

	cfg := config.NewConfig(config.WithMarkerDir("idx"))
	fsys := fstest.MapFS{
		"idx/" + routeQ + "/mod": {Data: []byte("function example.com/web ping\n")},
	}

	loc := b.BuildLocator(cfg, reg, nil, nil)
	loc.AddRoot(locate.FSRoot("test", fsys))
	res := b.BuildResolver(cfg, reg, nil, nil)

	warm := b.BuildCache(cfg, loc, res, nil, nil)
	if got := warm.ElementsFor(routeQ, cfg); len(got) != 1 {
		t.Fatalf("ElementsFor = %d elements, want 1", len(got))
	}

	// A rebuild never migrates memoized entries: different layers may
	// enumerate differently.
	emptyLoc := b.BuildLocator(cfg, reg, nil, nil)
	cold := b.BuildCache(cfg, emptyLoc, res, warm, nil)
	if got := cold.ElementsFor(routeQ, cfg); len(got) != 0 {
		t.Fatalf("cold cache ElementsFor = %d elements, want 0", len(got))
	}
}

func TestBuildResolver(t *testing.T) {
	b := builder.New()
	reg := registry.New()
	if b.BuildResolver(config.DefaultConfig(), reg, nil, nil) == nil {
		t.Fatalf("BuildResolver returned nil")
	}
}
