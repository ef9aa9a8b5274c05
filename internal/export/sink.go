// Package export holds the artifact sink abstraction shared by the three
// exporters. Exporters synthesize bytes; where those bytes land (a
// directory, a buffer in tests) is the sink's concern.
package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Sink creates named write targets for artifacts.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes artifacts into one directory, creating it on first use.
type DirSink struct {
	dir string
}

// NewDirSink builds a DirSink rooted at dir.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DirSink{dir: dir}, nil
}

// Create opens the named artifact for writing, truncating any previous run.
func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Join(s.dir, name))
}

// MemSink captures artifacts in memory; test helper.
type MemSink struct {
	Files map[string]*bytes.Buffer
}

// NewMemSink builds an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{Files: map[string]*bytes.Buffer{}}
}

// Create registers a named buffer and returns it as a write target.
func (s *MemSink) Create(name string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	s.Files[name] = buf
	return nopCloser{buf}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
