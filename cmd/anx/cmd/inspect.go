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

var inspectCmd = &cobra.Command{
	Use:   "inspect [root...]",
	Short: "Print the decoded contents of index trees",
	Long: `Walk the marker directory of each root (directory or zip archive)
and print every index file with its decoded signature lines.

Roots default to the ones configured in anx.yaml. Lines that fail to
decode are printed with their parse error but do not fail the command;
use "anx verify" for a strict pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		annFilter, _ := cmd.Flags().GetString("annotation")

		files, err := collectAll(args, markerDir(cmd))
		if err != nil {
			return err
		}

		var shown, lines, bad int
		lastAnn := ""
		for _, f := range files {
			if annFilter != "" && f.Annotation != annFilter {
				continue
			}
			if f.Annotation != lastAnn {
				fmt.Printf("%s\n", f.Annotation)
				lastAnn = f.Annotation
			}
			fmt.Printf("  %s (%s)\n", f.ID, f.Source)
			shown++
			for _, line := range f.Lines {
				lines++
				s, err := sig.Parse(line)
				if err != nil {
					bad++
					fmt.Printf("    ! %s: %v\n", line, err)
					continue
				}
				fmt.Printf("    %s\n", s.String())
			}
		}

		fmt.Printf("\n%d index files, %d lines, %d malformed\n", shown, lines, bad)
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("annotation", "", "only show this annotation's index files")
	rootCmd.AddCommand(inspectCmd)
}
