package modpack

import (
	"errors"
	"fmt"
)

var (
	// ErrArchiveOpen is matched by every *ArchiveOpenError.
	ErrArchiveOpen = errors.New("modpack archive cannot be opened")

	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("modpack document cannot be decoded")

	// ErrStructure is matched by every *StructuralError.
	ErrStructure = errors.New("modpack document is incomplete")
)

// Document kinds reported by DecodeError.
const (
	KindManifest      = "manifest"
	KindModDescriptor = "mod descriptor"
)

// ArchiveOpenError is returned when the container cannot be opened or read.
type ArchiveOpenError struct {
	Path string
	Err  error
}

func (e *ArchiveOpenError) Error() string {
	return fmt.Sprintf("open modpack %s: %v", e.Path, e.Err)
}

func (e *ArchiveOpenError) Unwrap() error { return e.Err }

func (e *ArchiveOpenError) Is(target error) bool { return target == ErrArchiveOpen }

// DecodeError is returned when a manifest or mod descriptor entry does not
// parse into its expected shape.
type DecodeError struct {
	Path string
	Kind string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// StructuralError is returned when a decoded record lacks something promotion
// needs.
type StructuralError struct {
	// Path is the archive entry the record was decoded from.
	Path string
	// Archive is the name of the source archive, if known.
	Archive string
	Field   string
	Reason  string
}

func (e *StructuralError) Error() string {
	msg := fmt.Sprintf("%s: field %s %s", e.Path, e.Field, e.Reason)
	if e.Archive != "" {
		msg = fmt.Sprintf("%s: archive %q: field %s %s", e.Path, e.Archive, e.Field, e.Reason)
	}
	return msg
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructure }
