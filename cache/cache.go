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

// Package cache implements the process-wide enumeration cache: one
// memoized, immutable element list per annotation qualified name.
//
// Population runs the whole locate -> list -> decode -> resolve pipeline
// synchronously on the calling goroutine, then publishes the finished
// list atomically; readers never observe a partial list. Concurrent first
// accesses for the same annotation are coalesced. Entries live for the
// process lifetime: there is no invalidation beyond Reset.
package cache

import (
	"bufio"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/sig"
	uref "dirpx.dev/anx/utils/reflect"
)

// New constructs a Cache over the given locator and resolver.
func New(loc apis.Locator, res apis.Resolver) apis.Cache {
	return &cache{loc: loc, res: res}
}

type cache struct {
	loc apis.Locator
	res apis.Resolver

	sf singleflight.Group
	mu sync.Mutex
	m  sync.Map // map[string][]apis.Element, published complete lists only
}

// Ensure cache implements apis.Cache.
var _ apis.Cache = (*cache)(nil)

// ElementsFor returns the memoized element list for the annotation,
// populating it on first access. The returned slice is shared and must be
// treated as read-only.
func (c *cache) ElementsFor(annQName string, cfg apis.Config) []apis.Element {
	if v, ok := c.m.Load(annQName); ok {
		return v.([]apis.Element)
	}
	v, _, _ := c.sf.Do(annQName, func() (any, error) {
		// Re-check: a previous flight may have published meanwhile.
		if v, ok := c.m.Load(annQName); ok {
			return v, nil
		}
		elements := c.populate(annQName, cfg)
		c.m.Store(annQName, elements)
		return elements, nil
	})
	return v.([]apis.Element)
}

// Reset drops all memoized entries.
func (c *cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = sync.Map{}
}

// populate computes the full element list for one annotation: every index
// line across every located resource, deduplicated by identity in
// insertion order, resolved, and re-checked against the element's live
// annotation set. Misses and malformed lines are logged and skipped; they
// never fail the enumeration.
func (c *cache) populate(annQName string, cfg apis.Config) []apis.Element {
	log := cfg.Log()
	relDir := cfg.MarkerDir + "/" + annQName

	var elements []apis.Element
	seen := make(map[string]struct{})

	for _, res := range c.loc.Locate(relDir) {
		for _, line := range readLines(res, log) {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}

			s, err := sig.Parse(line)
			if err != nil {
				log.Warn("anx: skipping malformed index line",
					zap.String("source", res.Source),
					zap.String("path", res.Path),
					zap.Error(err))
				continue
			}
			el, err := c.res.Resolve(s, cfg)
			if err != nil {
				log.Warn("anx: skipping unresolvable index entry",
					zap.String("source", res.Source),
					zap.String("line", line),
					zap.Error(err))
				continue
			}
			// Authoritative re-check: the index may be stale or merged
			// across modules; only the live annotation set decides.
			if !carries(el, annQName) {
				log.Warn("anx: index entry no longer carries annotation",
					zap.String("line", line),
					zap.String("annotation", annQName))
				continue
			}
			elements = append(elements, el)
		}
	}
	return elements
}

// readLines drains one resource into trimmed, non-empty lines. A read
// failure yields an empty contribution from that resource, permanently
// for this population.
func readLines(res apis.Resource, log *zap.Logger) []string {
	rc, err := res.Open()
	if err != nil {
		log.Debug("anx: index resource unreadable",
			zap.String("source", res.Source),
			zap.String("path", res.Path),
			zap.Error(err))
		return nil
	}
	defer rc.Close()

	var lines []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		log.Debug("anx: index resource read failed mid-stream",
			zap.String("source", res.Source),
			zap.String("path", res.Path),
			zap.Error(err))
		return nil
	}
	return lines
}

// carries reports whether the element's live annotation set contains an
// instance of the annotation type named annQName.
func carries(el apis.Element, annQName string) bool {
	for _, a := range el.Annotations() {
		if a == nil {
			continue
		}
		t, err := uref.Erase(reflect.TypeOf(a), 0)
		if err != nil {
			continue
		}
		name, err := uref.QualifiedName(t)
		if err != nil {
			continue
		}
		if name == annQName {
			return true
		}
	}
	return false
}
