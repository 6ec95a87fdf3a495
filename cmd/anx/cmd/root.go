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
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "anx",
	Short: "anx - work with annotated-element index trees",
	Long: `anx inspects, verifies, merges and emits the index files that drive
run-time enumeration of annotated elements.

An index tree is a directory (or zip archive) containing one file per
(marker, annotation) pair under "<marker>/<annotation>/", each file
holding one signature line per annotated element.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./anx.yaml)")
	rootCmd.PersistentFlags().String("marker", "", "index path prefix (overrides config)")
}

// markerDir resolves the effective index path prefix for a command.
func markerDir(cmd *cobra.Command) string {
	if m, _ := cmd.Flags().GetString("marker"); m != "" {
		return m
	}
	return cfg.MarkerDir
}
