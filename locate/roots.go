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

package locate

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"path"

	"dirpx.dev/anx/apis"
	"dirpx.dev/anx/archive"
)

// FSRoot wraps any fs.FS as an index root: an embedded tree, an OS
// directory (os.DirFS), or an already-open archive reader. The filesystem
// handle is owned by the caller and never closed here.
func FSRoot(name string, fsys fs.FS) apis.Root {
	return &fsRoot{name: name, fsys: fsys}
}

// ArchiveRoot opens the zip archive at zipPath ad hoc on every Locate:
// the handle is always closed before returning, and contents are captured
// so resources stay readable afterwards.
func ArchiveRoot(zipPath string) apis.Root {
	return &archiveRoot{path: zipPath}
}

// ArchiveReaderRoot wraps an archive already opened by someone else. The
// reader is never closed here; central-directory scanning is used instead
// of a filesystem view.
func ArchiveReaderRoot(name string, r *zip.Reader) apis.Root {
	return &readerRoot{name: name, r: r}
}

type fsRoot struct {
	name string
	fsys fs.FS
}

func (r *fsRoot) Name() string { return r.name }

func (r *fsRoot) Resources(relDir string) []apis.Resource {
	names, err := archive.List(r.fsys, relDir)
	if err != nil {
		return nil
	}
	out := make([]apis.Resource, 0, len(names))
	for _, name := range names {
		p := path.Join(relDir, name)
		out = append(out, apis.Resource{
			Source: r.name,
			Path:   p,
			Open: func() (io.ReadCloser, error) {
				return r.fsys.Open(p)
			},
		})
	}
	return out
}

type archiveRoot struct {
	path string
}

func (r *archiveRoot) Name() string { return r.path }

// Resources opens the archive, scans its central directory for immediate
// children of relDir, reads their content, and closes the handle. Any
// failure yields an empty contribution from this root.
func (r *archiveRoot) Resources(relDir string) []apis.Resource {
	zr, err := zip.OpenReader(r.path)
	if err != nil {
		return nil
	}
	defer zr.Close()

	var out []apis.Resource
	for _, name := range archive.ScanPrefix(&zr.Reader, relDir) {
		p := path.Join(relDir, name)
		f, err := zr.Open(p)
		if err != nil {
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		out = append(out, apis.Resource{
			Source: r.path,
			Path:   p,
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(content)), nil
			},
		})
	}
	return out
}

type readerRoot struct {
	name string
	r    *zip.Reader
}

func (r *readerRoot) Name() string { return r.name }

func (r *readerRoot) Resources(relDir string) []apis.Resource {
	var out []apis.Resource
	for _, name := range archive.ScanPrefix(r.r, relDir) {
		p := path.Join(relDir, name)
		out = append(out, apis.Resource{
			Source: r.name,
			Path:   p,
			Open: func() (io.ReadCloser, error) {
				return r.r.Open(p)
			},
		})
	}
	return out
}
