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

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/anx/apis"
)

const (
	// DefaultMarkerDir is the index path prefix: the qualified name of
	// the anx.Indexed marker annotation type.
	DefaultMarkerDir = "dirpx.dev/anx.Indexed"
	// DefaultMaxSliceDepth represents the default for MaxSliceDepth.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxSliceDepth = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxSliceDepth is valid.
	if cfg.MaxSliceDepth <= 0 {
		cfg.MaxSliceDepth = DefaultMaxSliceDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MarkerDir:     DefaultMarkerDir,
		MaxSliceDepth: DefaultMaxSliceDepth,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = log
	}
}

// WithMarkerDir overrides the index path prefix.
// An empty value resets to the default.
func WithMarkerDir(dir string) Option {
	return func(c *apis.Config) {
		if dir == "" {
			c.MarkerDir = DefaultMarkerDir
			return
		}
		c.MarkerDir = dir
	}
}

// WithMaxSliceDepth sets the MaxSliceDepth option.
// A non-positive value resets to the default.
func WithMaxSliceDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxSliceDepth = DefaultMaxSliceDepth
			return
		}
		c.MaxSliceDepth = depth
	}
}
