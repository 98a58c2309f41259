package archive

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ZipOpener opens zip containers.
type ZipOpener struct{}

// Open implements Opener.
func (ZipOpener) Open(path string) (Handle, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	h := &zipHandle{rc: rc}
	for _, f := range rc.File {
		h.entries = append(h.entries, &zipEntry{file: f, path: NormalizePath(f.Name)})
	}

	return h, nil
}

type zipHandle struct {
	rc      *zip.ReadCloser
	entries []Entry
}

func (h *zipHandle) Entries() []Entry {
	return h.entries
}

func (h *zipHandle) Close() error {
	return h.rc.Close()
}

type zipEntry struct {
	file *zip.File
	path string
}

func (e *zipEntry) Path() string {
	return e.path
}

func (e *zipEntry) IsFolder() bool {
	return e.file.FileInfo().IsDir() || strings.HasSuffix(e.path, "/")
}

func (e *zipEntry) Size() int64 {
	return int64(e.file.UncompressedSize64)
}

func (e *zipEntry) ExtractTo(w io.Writer) error {
	r, err := e.file.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", e.path, err)
	}
	defer r.Close()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("extract entry %s: %w", e.path, err)
	}

	return nil
}
