package meter

import (
	"fmt"
	"os"
)

// NewFileReader wraps an already-open file, deriving the total size from its
// metadata. The stat error is returned unchanged when the size cannot be
// determined.
func NewFileReader(f *os.File, opts ...Option) (*Reader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return NewReader(f, info.Size(), opts...), nil
}

// Open opens the file at path and wraps it sized from its metadata. Close
// the returned Reader to release the file.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	m, err := NewFileReader(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	return m, nil
}
