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

	"dirpx.dev/anx/sig"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [root...]",
	Short: "Strictly check index trees for structural and grammar errors",
	Long: `Walk the marker directory of each root and fail on anything the
run-time pipeline would have to skip: files placed directly under the
marker directory, signature lines that do not match the grammar, and
(with --no-duplicates) identical lines appearing more than once across
all roots.

The exit status is non-zero when any problem is found, making the
command suitable for CI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		noDup, _ := cmd.Flags().GetBool("no-duplicates")

		files, err := collectAll(args, markerDir(cmd))
		if err != nil {
			return err
		}

		var problems int
		seen := make(map[string]string) // line -> first location

		for _, f := range files {
			loc := fmt.Sprintf("%s: %s", f.Source, f.relPath())
			if f.ID == "" {
				problems++
				fmt.Printf("%s: file directly under marker directory\n", loc)
				continue
			}
			for _, line := range f.Lines {
				if _, err := sig.Parse(line); err != nil {
					problems++
					fmt.Printf("%s: %v\n", loc, err)
					continue
				}
				if noDup {
					key := f.Annotation + "\x00" + line
					if first, ok := seen[key]; ok {
						problems++
						fmt.Printf("%s: duplicate of %s: %q\n", loc, first, line)
					} else {
						seen[key] = loc
					}
				}
			}
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) in %d index files", problems, len(files))
		}
		fmt.Printf("ok: %d index files\n", len(files))
		return nil
	},
}

func init() {
	verifyCmd.Flags().Bool("no-duplicates", false, "also fail on identical lines across roots")
	rootCmd.AddCommand(verifyCmd)
}
