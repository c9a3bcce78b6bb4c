package processing

import (
	"fmt"
	"os"
)

// TempFile owns exactly one scratch file on disk. It is created by a
// strategy and is deleted when Close is called, unless the file has already
// been handed off to a consumer that took over deletion (Released).
//
// TempFile is not safe for concurrent use; ownership transfers (via the
// output channel, then via the archive-entry channel) are single-threaded
// handoffs, never shared access.
type TempFile struct {
	path     string
	released bool
}

// NewTempFile creates an empty scratch file in the system temp directory.
func NewTempFile() (*TempFile, error) {
	f, err := os.CreateTemp("", "ingest-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create scratch temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close scratch temp file: %w", err)
	}
	return &TempFile{path: path}, nil
}

// NewTempFileFromPath wraps an already-materialized path, taking ownership
// of its deletion.
func NewTempFileFromPath(path string) *TempFile {
	return &TempFile{path: path}
}

// Path returns the file's current location on disk.
func (t *TempFile) Path() string {
	return t.path
}

// Release marks the file as handed off to a consumer that now owns its
// deletion. Close becomes a no-op afterward.
func (t *TempFile) Release() {
	t.released = true
}

// Close deletes the underlying file unless it has been Released. Safe to
// call multiple times.
func (t *TempFile) Close() error {
	if t == nil || t.released {
		return nil
	}
	t.released = true
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove scratch temp file %q: %w", t.path, err)
	}
	return nil
}
