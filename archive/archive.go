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

// Package archive implements the format-specific listing strategies that
// turn an index location into the ordered names of its immediate children.
//
// Two strategies exist for fs.FS roots, tried in order: a real directory
// read, and a manifest read for filesystems whose packaging flattened the
// tree (the directory path opens as a plain-text file listing its own
// children, one name per line). For zip archives a flat central-directory
// prefix scan avoids building a filesystem view of the whole container.
package archive

import (
	"archive/zip"
	"bufio"
	"errors"
	"io/fs"
	"strings"
)

// ErrNoListing indicates that no strategy could list the location.
var ErrNoListing = errors.New("anx(archive): location cannot be listed")

// List returns the immediate child names of dir within fsys, in listing
// order. It first attempts a directory read, then falls back to reading
// dir itself as a manifest file. Both failing yields ErrNoListing.
func List(fsys fs.FS, dir string) ([]string, error) {
	if names, err := listDir(fsys, dir); err == nil {
		return names, nil
	}
	if names, err := listManifest(fsys, dir); err == nil {
		return names, nil
	}
	return nil, ErrNoListing
}

// listDir lists dir as a real directory.
func listDir(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// listManifest reads dir as a manifest file naming its own children.
func listManifest(fsys fs.FS, dir string) ([]string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ScanPrefix lists the immediate children of dir by scanning the zip
// central directory and filtering by path prefix, stripping the prefix to
// get child names. Entries nested deeper than one level and directory
// entries are skipped; duplicates collapse to their first occurrence.
func ScanPrefix(r *zip.Reader, dir string) []string {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	seen := make(map[string]struct{})
	var names []string
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(f.Name, prefix)
		if rest == "" || strings.Contains(rest, "/") {
			continue
		}
		if _, ok := seen[rest]; ok {
			continue
		}
		seen[rest] = struct{}{}
		names = append(names, rest)
	}
	return names
}
