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
	"archive/zip"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// fixedZipTime keeps packed archives byte-for-byte reproducible
// (1980-01-01 UTC, the zip epoch).
var fixedZipTime = time.Unix(315532800, 0).UTC()

var packCmd = &cobra.Command{
	Use:   "pack [root...]",
	Short: "Merge index trees into one reproducible zip archive",
	Long: `Gather the marker directories of all roots and write them into a
single zip archive. Files at the same relative path are merged
line-wise, keeping the first occurrence of identical lines, so packing
is idempotent across overlapping roots.

Entries are sorted and carry a fixed timestamp: packing the same inputs
always produces the same bytes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		marker := markerDir(cmd)

		files, err := collectAll(args, marker)
		if err != nil {
			return err
		}

		merged := mergeByPath(files)
		paths := make([]string, 0, len(merged))
		for p := range merged {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		zw := zip.NewWriter(f)
		for _, p := range paths {
			h := &zip.FileHeader{Name: marker + "/" + p, Method: zip.Deflate}
			h.SetMode(0o644)
			h.Modified = fixedZipTime
			w, err := zw.CreateHeader(h)
			if err != nil {
				return fmt.Errorf("create entry %s: %w", p, err)
			}
			if _, err := w.Write([]byte(strings.Join(merged[p], "\n") + "\n")); err != nil {
				return fmt.Errorf("write entry %s: %w", p, err)
			}
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finalize %s: %w", out, err)
		}

		fmt.Printf("packed %d index files into %s\n", len(paths), out)
		return nil
	},
}

// mergeByPath merges index files found at the same relative path across
// roots, deduplicating identical lines and keeping first occurrences.
func mergeByPath(files []indexFile) map[string][]string {
	merged := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, f := range files {
		if f.ID == "" {
			continue
		}
		p := f.relPath()
		if seen[p] == nil {
			seen[p] = make(map[string]struct{})
		}
		for _, line := range f.Lines {
			if _, dup := seen[p][line]; dup {
				continue
			}
			seen[p][line] = struct{}{}
			merged[p] = append(merged[p], line)
		}
	}
	return merged
}

func init() {
	packCmd.Flags().StringP("output", "o", "anx-index.zip", "output archive path")
	rootCmd.AddCommand(packCmd)
}
