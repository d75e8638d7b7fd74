package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink stores encoded images under a key
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// FileSink writes images below a directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Put writes data to Dir/key, creating parent directories
func (s *FileSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriterSink streams every image to one writer, typically stdout
type WriterSink struct {
	W io.Writer
}

// NewWriterSink creates a sink that ignores keys
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

// Put writes data to the underlying writer
func (s *WriterSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.W.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
