// Package sink provides output destinations for generated headers.
package sink

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// OutputSink receives a generated header.
type OutputSink interface {
	// WriteFile writes content to the header at path. The path is relative
	// and must name a .h file; the sink determines the actual location.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes headers below a directory on the local filesystem.
//
// A header whose content is unchanged is left untouched, keeping its
// modification time.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string
}

// NewFilesystemSink creates a FilesystemSink writing to root.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{Root: root}
}

// WriteFile writes content to path within the root directory. Parent
// directories are created as needed and the write goes through a temp file
// and a rename, so readers never see a partial header.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	if existing, err := os.ReadFile(fullPath); err == nil && bytes.Equal(existing, content) {
		return nil
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating directories")
	}

	tmp, err := os.CreateTemp(dir, ".objcgen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	switch {
	case writeErr != nil:
		cleanup()
		return errors.Wrap(writeErr, "writing temp file")
	case closeErr != nil:
		cleanup()
		return errors.Wrap(closeErr, "closing temp file")
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return errors.Wrap(err, "setting file mode")
	}
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		cleanup()
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// MemorySink keeps generated headers in memory.
type MemorySink struct {
	headers map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{headers: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "invalid path %q", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.headers[path] = bytes.Clone(content)
	return nil
}

// Get returns the content of the header at path, or nil if none was
// written.
func (s *MemorySink) Get(path string) []byte {
	return bytes.Clone(s.headers[path])
}

// ValidatePath checks that path names a header below the sink root:
// relative, /-separated, clean, without .. components and ending in .h.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	// Windows drive letters, even on Unix.
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	if cleaned := filepath.ToSlash(filepath.Clean(path)); cleaned != path {
		return errors.Newf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	if filepath.Ext(path) != ".h" {
		return errors.WithHint(errors.Newf("%q is not a header", path), "header paths end in .h")
	}
	return nil
}
