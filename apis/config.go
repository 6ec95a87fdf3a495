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

import "go.uber.org/zap"

// Config carries read-only enumeration knobs that influence location,
// decoding and resolution. It is passed by value and should be treated
// as immutable by implementations.
type Config struct {
	// Logger receives diagnostics: resolution misses and malformed index
	// lines at Warn, per-root I/O failures at Debug. Nil means no output.
	Logger *zap.Logger

	// MarkerDir is the index path prefix: the qualified name of the
	// marker annotation type under which index files are emitted.
	MarkerDir string

	// MaxSliceDepth limits '[' nesting while tokenizing descriptors.
	// Acts as a safety guard against pathological nesting.
	MaxSliceDepth int
}

// Log returns the configured logger, or a nop logger when unset, so call
// sites never have to nil-check.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
