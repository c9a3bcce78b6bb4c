package strategy

import (
	gocontext "context"
	"fmt"
	"io"
	"os"

	"archive/zip"

	"github.com/ingestkit/ingest/identity"
	"github.com/ingestkit/ingest/processing"
)

// ZipMimeIdentifier identifies the media type of a zip entry's content once
// it has been spooled to disk, since a zip entry carries no media type of
// its own.
type ZipMimeIdentifier interface {
	Identify(ctx gocontext.Context, path string) (mediaType string, ok bool, err error)
}

// ZipEmbedded extracts the entries of a zip archive, emitting one Embedded
// artifact per file entry (directory entries are skipped silently). It
// produces no Derived artifact of its own.
type ZipEmbedded struct {
	Identifier ZipMimeIdentifier
}

// Name identifies the strategy in logs and traces.
func (ZipEmbedded) Name() string { return "zip-embedded" }

// Derive opens inputPath as a zip archive and emits one Embedded artifact
// per file entry. An entry that fails to spool or identify is reported as
// an error output; the remaining entries still proceed.
func (s ZipEmbedded) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, _ string) error {
	reader, err := zip.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		artifact, err := s.spoolEntry(ctx, pctx, entry)
		if err != nil {
			if outErr := pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("spool zip entry %q: %w", entry.Name, err)}); outErr != nil {
				return outErr
			}
			continue
		}
		if err := pctx.AddOutput(ctx, processing.Output{Artifact: artifact}); err != nil {
			return err
		}
	}

	return nil
}

func (s ZipEmbedded) spoolEntry(ctx gocontext.Context, pctx processing.Context, entry *zip.File) (processing.EmbeddedArtifact, error) {
	src, err := entry.Open()
	if err != nil {
		return processing.EmbeddedArtifact{}, fmt.Errorf("open entry: %w", err)
	}
	defer src.Close()

	tmp, err := processing.NewTempFile()
	if err != nil {
		return processing.EmbeddedArtifact{}, fmt.Errorf("create temp file: %w", err)
	}

	dst, err := os.Create(tmp.Path())
	if err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("open temp file for writing: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("copy entry content: %w", err)
	}
	dst.Close()

	mediaType := processing.MediaOctetStream
	if s.Identifier != nil {
		mt, ok, err := s.Identifier.Identify(ctx, tmp.Path())
		if err != nil {
			tmp.Close()
			return processing.EmbeddedArtifact{}, fmt.Errorf("identify entry media type: %w", err)
		}
		if ok {
			mediaType = mt
		}
	}

	checksum, err := identity.ChecksumOfPath(tmp.Path(), mediaType)
	if err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("checksum entry: %w", err)
	}

	name := baseName(entry.Name)
	return processing.NewEmbedded(pctx, name, tmp, mediaType, checksum), nil
}

// baseName returns the final path component of a zip entry's name, which
// may use forward slashes regardless of host OS.
func baseName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}
