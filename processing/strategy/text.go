package strategy

import (
	gocontext "context"
	"fmt"

	"github.com/ingestkit/ingest/processing"
)

// TextExtractor extracts the plain text content of a file, writing it
// directly to outputPath.
type TextExtractor interface {
	TextIntoFile(ctx gocontext.Context, inputPath, outputPath string) error
}

// DefaultText extracts the plain text content of any file whose media type
// dispatch considers text-bearing, delegating the extraction itself to an
// external text extractor (Tika, in every deployment this strategy has
// actually run in).
type DefaultText struct {
	Extractor TextExtractor
}

// Name identifies the strategy in logs and traces.
func (DefaultText) Name() string { return "text" }

// Derive extracts the file's text into a fresh scratch file and emits it as
// extracted.txt.
func (s DefaultText) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, checksum string) error {
	scratch, err := processing.NewTempFile()
	if err != nil {
		return pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("create scratch file: %w", err)})
	}

	if err := s.Extractor.TextIntoFile(ctx, inputPath, scratch.Path()); err != nil {
		scratch.Close()
		return pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("extract text: %w", err)})
	}

	artifact := processing.NewDerived(pctx, processing.NameExtractedText, scratch, processing.MediaTextPlain, checksum)
	return pctx.AddOutput(ctx, processing.Output{Artifact: artifact})
}
