package api

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source yields the bytes of one source image. Open may be called once
// per request; the manager closes the reader on every exit path.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the source from a file path.
type FileSource string

func (s FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(s))
}

// BufferSource serves the source from memory.
type BufferSource []byte

func (s BufferSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s)), nil
}

// Target receives the complete encoded output. Commit is called at most
// once, and only with the full result: a failed request writes nothing,
// so the target never holds a partial image.
type Target interface {
	Commit(data []byte) error
}

// FileTarget writes the output to a file path via a temporary sibling
// and rename, so a crash mid-write never leaves a truncated file.
type FileTarget string

func (t FileTarget) Commit(data []byte) error {
	dir := filepath.Dir(string(t))
	tmp, err := os.CreateTemp(dir, ".pixelmill-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), string(t)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// BufferTarget collects the output in memory.
type BufferTarget struct {
	Data []byte
}

func (t *BufferTarget) Commit(data []byte) error {
	t.Data = data
	return nil
}
