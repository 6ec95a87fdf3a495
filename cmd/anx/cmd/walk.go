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
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// indexFile is one index file as found under a root's marker directory.
type indexFile struct {
	// Source names the root the file came from.
	Source string
	// Annotation is the qualified annotation name (the directory name).
	Annotation string
	// ID is the file name inside the annotation directory.
	ID string
	// Lines are the non-blank signature lines in file order.
	Lines []string
}

// relPath is the file path relative to the marker directory.
func (f indexFile) relPath() string {
	return f.Annotation + "/" + f.ID
}

// collectDir walks the marker directory of a filesystem tree rooted at
// dir. A missing marker directory is an empty contribution, not an
// error.
func collectDir(dir, marker string) ([]indexFile, error) {
	fsys := os.DirFS(dir)
	var out []indexFile
	err := fs.WalkDir(fsys, marker, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, marker+"/")
		ann, id := path.Split(rel)
		ann = strings.TrimSuffix(ann, "/")
		if ann == "" {
			// Files directly under the marker directory are not index
			// files; leave them to verify's structural report.
			ann, id = rel, ""
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		lines, err := readLines(f)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, indexFile{Source: dir, Annotation: ann, ID: id, Lines: lines})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// collectArchive reads the marker directory entries of a zip archive.
func collectArchive(zipPath, marker string) ([]indexFile, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", zipPath, err)
	}
	defer r.Close()

	prefix := marker + "/"
	var out []indexFile
	for _, zf := range r.File {
		name := strings.TrimSuffix(zf.Name, "/")
		if !strings.HasPrefix(name, prefix) || strings.HasSuffix(zf.Name, "/") {
			continue
		}
		rel := strings.TrimPrefix(name, prefix)
		ann, id := path.Split(rel)
		ann = strings.TrimSuffix(ann, "/")
		if ann == "" {
			ann, id = rel, ""
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", zipPath, zf.Name, err)
		}
		lines, err := readLines(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", zipPath, zf.Name, err)
		}
		out = append(out, indexFile{Source: zipPath, Annotation: ann, ID: id, Lines: lines})
	}
	return out, nil
}

// collectAll gathers index files from explicit roots, or from the
// configured roots when none are given. Directory roots are told apart
// from archives by their .zip/.jar suffix.
func collectAll(roots []string, marker string) ([]indexFile, error) {
	dirs, archives := cfg.Roots.Dirs, cfg.Roots.Archives
	if len(roots) > 0 {
		dirs, archives = nil, nil
		for _, r := range roots {
			if isArchivePath(r) {
				archives = append(archives, r)
			} else {
				dirs = append(dirs, r)
			}
		}
	}

	var out []indexFile
	for _, d := range dirs {
		files, err := collectDir(d, marker)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	for _, a := range archives {
		files, err := collectArchive(a, marker)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Annotation != out[j].Annotation {
			return out[i].Annotation < out[j].Annotation
		}
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

func isArchivePath(p string) bool {
	return strings.HasSuffix(p, ".zip") || strings.HasSuffix(p, ".jar")
}

// readLines returns the non-blank lines of an index file.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
