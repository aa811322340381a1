package pipeline

import (
	"io"
	"path/filepath"
	"strings"
)

// ContentMode classifies what a File carries.
type ContentMode int

const (
	// ModeNull files carry no content (directories, placeholders).
	ModeNull ContentMode = iota
	// ModeStream files carry a reader that cannot be transformed in place.
	ModeStream
	// ModeBuffer files carry their full contents in memory.
	ModeBuffer
)

func (m ContentMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeBuffer:
		return "buffer"
	default:
		return "null"
	}
}

// File is one unit flowing through the pipeline.
type File struct {
	// Path is the file's location on disk.
	Path string
	// Base is the root the file was matched under; Relative is computed from it.
	Base string
	// Contents holds buffered content.
	Contents []byte
	// Stream holds streamed content.
	Stream io.Reader
}

// Mode reports the content classification. Buffered content wins when both
// fields are set.
func (f *File) Mode() ContentMode {
	switch {
	case f.Contents != nil:
		return ModeBuffer
	case f.Stream != nil:
		return ModeStream
	default:
		return ModeNull
	}
}

// Dir is the directory containing the file.
func (f *File) Dir() string {
	return filepath.Dir(f.Path)
}

// Relative returns Path relative to Base, or the base name when Base is unset
// or unrelated.
func (f *File) Relative() string {
	if f.Base == "" {
		return filepath.Base(f.Path)
	}
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(f.Path)
	}
	return rel
}
