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

package cmd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	anxcfg "dirpx.dev/anx/config"
)

// Config is the CLI configuration, typically read from anx.yaml.
type Config struct {
	// MarkerDir is the index path prefix inside every root.
	MarkerDir string `yaml:"marker_dir"`
	// Roots are the index trees commands operate on when no explicit
	// roots are given on the command line.
	Roots RootsConfig `yaml:"roots"`
}

// RootsConfig lists index tree locations.
type RootsConfig struct {
	Dirs     []string `yaml:"dirs"`
	Archives []string `yaml:"archives"`
}

// DefaultCLIConfig returns the configuration used when no config file
// exists.
func DefaultCLIConfig() *Config {
	return &Config{MarkerDir: anxcfg.DefaultMarkerDir}
}

// LoadConfig reads the configuration from path, falling back to
// ./anx.yaml and then to defaults when no file is present.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = "anx.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultCLIConfig(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c := DefaultCLIConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.MarkerDir == "" {
		c.MarkerDir = anxcfg.DefaultMarkerDir
	}
	return c, nil
}
