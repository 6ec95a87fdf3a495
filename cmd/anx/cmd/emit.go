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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dirpx.dev/anx/sig"
)

var emitCmd = &cobra.Command{
	Use:   "emit [lines-file]",
	Short: "Write validated signature lines into an index tree",
	Long: `Read signature lines from a file (or stdin when no argument is
given), validate them against the grammar, and write them as one new
index file under "<out>/<marker>/<annotation>/".

The file name is a fresh UUID, so independent emitters never collide:
contributions from separate builds merge by sitting next to each other
in the same annotation directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ann, _ := cmd.Flags().GetString("annotation")
		out, _ := cmd.Flags().GetString("out")
		if ann == "" {
			return fmt.Errorf("--annotation is required")
		}

		data, err := readInput(args)
		if err != nil {
			return err
		}
		lines, err := readLines(strings.NewReader(string(data)))
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("no signature lines in input")
		}
		for i, line := range lines {
			if _, err := sig.Parse(line); err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		dir := filepath.Join(out, filepath.FromSlash(markerDir(cmd)), ann)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		name := filepath.Join(dir, uuid.NewString())
		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}

		fmt.Printf("emitted %d line(s) to %s\n", len(lines), name)
		return nil
	},
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

func init() {
	emitCmd.Flags().String("annotation", "", "qualified annotation name the lines belong to (required)")
	emitCmd.Flags().String("out", ".", "index tree root to write into")
	rootCmd.AddCommand(emitCmd)
}
