// Package testutil builds modpack fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// File is one entry of a fixture archive. Names ending in "/" are folders.
type File struct {
	Name string
	Body string
}

// WriteZip writes files, in order, to a zip archive inside a temporary
// directory and returns its path.
func WriteZip(t testing.TB, files ...File) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "modpack.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			t.Fatalf("create entry %s: %v", file.Name, err)
		}
		if strings.HasSuffix(file.Name, "/") {
			continue
		}
		if _, err := w.Write([]byte(file.Body)); err != nil {
			t.Fatalf("write entry %s: %v", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}

	return path
}
