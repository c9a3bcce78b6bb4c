package strategy

import (
	gocontext "context"
	"fmt"
	"os"

	"github.com/ingestkit/ingest/processing"
)

// MetadataExtractor extracts a file's metadata as a raw JSON document.
type MetadataExtractor interface {
	Metadata(ctx gocontext.Context, path string) (string, error)
}

// DefaultMetadata extracts the metadata of every file, regardless of media
// type - dispatch registers it unconditionally.
type DefaultMetadata struct {
	Extractor MetadataExtractor
}

// Name identifies the strategy in logs and traces.
func (DefaultMetadata) Name() string { return "metadata" }

// Derive writes the file's extracted metadata JSON to a fresh scratch file
// and emits it as metadata.json.
func (s DefaultMetadata) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, checksum string) error {
	result, err := s.derive(ctx, pctx, inputPath, checksum)
	if err != nil {
		return pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("extract metadata: %w", err)})
	}
	return pctx.AddOutput(ctx, processing.Output{Artifact: result})
}

func (s DefaultMetadata) derive(ctx gocontext.Context, pctx processing.Context, inputPath string, checksum string) (processing.DerivedArtifact, error) {
	metadata, err := s.Extractor.Metadata(ctx, inputPath)
	if err != nil {
		return processing.DerivedArtifact{}, err
	}

	scratch, err := processing.NewTempFile()
	if err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("create scratch file: %w", err)
	}
	if err := os.WriteFile(scratch.Path(), []byte(metadata), 0o600); err != nil {
		scratch.Close()
		return processing.DerivedArtifact{}, fmt.Errorf("write metadata to scratch file: %w", err)
	}
	return processing.NewDerived(pctx, processing.NameMetadataJSON, scratch, processing.MediaJSON, checksum), nil
}
