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

package config_test

import (
	"testing"

	"go.uber.org/zap"

	"dirpx.dev/anx/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.MarkerDir != config.DefaultMarkerDir {
		t.Fatalf("MarkerDir = %q, want %q", cfg.MarkerDir, config.DefaultMarkerDir)
	}
	if cfg.MaxSliceDepth != config.DefaultMaxSliceDepth {
		t.Fatalf("MaxSliceDepth = %d, want %d", cfg.MaxSliceDepth, config.DefaultMaxSliceDepth)
	}
	if cfg.Logger != nil {
		t.Fatalf("Logger = %v, want nil", cfg.Logger)
	}
	// Log() never returns nil.
	if cfg.Log() == nil {
		t.Fatalf("Log() = nil, want nop logger")
	}
}

func TestNewConfig_Options(t *testing.T) {
	log := zap.NewNop()
	cfg := config.NewConfig(
		config.WithLogger(log),
		config.WithMarkerDir("custom/prefix"),
		config.WithMaxSliceDepth(3),
	)
	if cfg.Logger != log {
		t.Fatalf("Logger not applied")
	}
	if cfg.MarkerDir != "custom/prefix" {
		t.Fatalf("MarkerDir = %q, want custom/prefix", cfg.MarkerDir)
	}
	if cfg.MaxSliceDepth != 3 {
		t.Fatalf("MaxSliceDepth = %d, want 3", cfg.MaxSliceDepth)
	}
}

func TestNewConfig_InvalidValuesReset(t *testing.T) {
	cfg := config.NewConfig(
		config.WithMarkerDir(""),
		config.WithMaxSliceDepth(-1),
	)
	if cfg.MarkerDir != config.DefaultMarkerDir {
		t.Fatalf("MarkerDir = %q, want default", cfg.MarkerDir)
	}
	if cfg.MaxSliceDepth != config.DefaultMaxSliceDepth {
		t.Fatalf("MaxSliceDepth = %d, want default", cfg.MaxSliceDepth)
	}
}
