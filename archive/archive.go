// Package archive opens modpack containers and exposes their flat entry listing.
package archive

import (
	"io"
	"strings"
)

// Entry is one item of an archive's flat listing.
type Entry interface {
	// Path is the slash-separated path of the entry inside the archive.
	Path() string
	IsFolder() bool
	// Size is the uncompressed size in bytes.
	Size() int64
	// ExtractTo writes the full content of the entry to w.
	ExtractTo(w io.Writer) error
}

// Handle is an opened archive. Entries stay valid until Close is called.
type Handle interface {
	Entries() []Entry
	Close() error
}

// Opener opens the archive container found at path.
type Opener interface {
	Open(path string) (Handle, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Handle, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Handle, error) {
	return f(path)
}

// NormalizePath converts backslash separators written by Windows packers to
// forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Base returns the last element of a slash-separated path.
func Base(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
