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

package locate_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"dirpx.dev/anx/locate"
)

func writeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	// Stable entry order keeps assertions deterministic.
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestArchiveRoot(t *testing.T) {
	data := writeZip(t, map[string]string{
		"idx/ann/a": "class x.A\n",
		"idx/ann/b": "class x.B\n",
	})
	zipPath := filepath.Join(t.TempDir(), "index.zip")
	if err := os.WriteFile(zipPath, data, 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	root := locate.ArchiveRoot(zipPath)
	if root.Name() != zipPath {
		t.Fatalf("Name() = %q, want %q", root.Name(), zipPath)
	}

	resources := root.Resources("idx/ann")
	if len(resources) != 2 {
		t.Fatalf("Resources: got %d, want 2", len(resources))
	}
	// The archive handle is closed before Resources returns; content must
	// still be readable afterwards, repeatedly.
	for i := 0; i < 2; i++ {
		if got := mustRead(t, resources[0]); got != "class x.A\n" {
			t.Fatalf("read %d: got %q, want %q", i, got, "class x.A\n")
		}
	}
}

func TestArchiveReaderRoot(t *testing.T) {
	data := writeZip(t, map[string]string{"idx/ann/a": "class x.A\n"})
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip reader: %v", err)
	}

	root := locate.ArchiveReaderRoot("embedded", zr)
	resources := root.Resources("idx/ann")
	if len(resources) != 1 {
		t.Fatalf("Resources: got %d, want 1", len(resources))
	}
	if resources[0].Source != "embedded" || resources[0].Path != "idx/ann/a" {
		t.Fatalf("resource = %+v, want embedded idx/ann/a", resources[0])
	}
	if got := mustRead(t, resources[0]); got != "class x.A\n" {
		t.Fatalf("content = %q, want %q", got, "class x.A\n")
	}
}

func TestArchiveRoot_MissingFile(t *testing.T) {
	root := locate.ArchiveRoot(filepath.Join(t.TempDir(), "absent.zip"))
	if resources := root.Resources("idx/ann"); resources != nil {
		t.Fatalf("Resources of missing archive = %+v, want nil", resources)
	}
}
