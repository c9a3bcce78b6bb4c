// Package archive builds the ZIP archive the output pump assembles from
// every artifact it forwards, writing entries eagerly as they arrive rather
// than buffering the whole archive in memory.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// Builder wraps archive/zip.Writer with push-one-file-at-a-time semantics
// matching how the output pump consumes the processing pipeline's output
// channel: one artifact at a time, in whatever order they complete.
type Builder struct {
	w *zip.Writer
}

// New returns a Builder that writes its ZIP stream to w.
func New(w io.Writer) *Builder {
	return &Builder{w: zip.NewWriter(w)}
}

// Push copies the file at inputPath into the archive at archivePath.
func (b *Builder) Push(inputPath, archivePath string) error {
	entry, err := b.w.Create(archivePath)
	if err != nil {
		return fmt.Errorf("create archive entry %q: %w", archivePath, err)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %q for archiving: %w", inputPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("write archive entry %q: %w", archivePath, err)
	}
	return nil
}

// Close finishes the archive, writing its central directory. No further
// entries may be pushed afterward.
func (b *Builder) Close() error {
	return b.w.Close()
}
