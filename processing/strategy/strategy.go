// Package strategy implements the derivation strategies the dispatch table
// selects for a given media type: text extraction, metadata extraction, PDF
// rendering, and embedded-file extraction. Every strategy is independent of
// every other; the engine runs whichever ones dispatch selects concurrently
// and joins their results into a single output stream.
package strategy

import (
	"context"

	"github.com/ingestkit/ingest/processing"
)

// Strategy derives zero or more artifacts from the file at inputPath,
// pushing each into the context's output channel via pctx.AddOutput. A
// strategy that produces exactly one artifact (text, metadata, PDF) creates
// its own scratch temp file to hold it, handing ownership of its deletion
// to the artifact; a strategy that discovers embedded files (mbox, rfc822,
// zip) creates one temp file per child it spools instead.
type Strategy interface {
	// Derive runs the strategy against inputPath, using checksum as the
	// deduplication checksum already computed for the file (so strategies
	// producing exactly one artifact from the whole input don't need to
	// recompute it).
	Derive(ctx context.Context, pctx processing.Context, inputPath string, checksum string) error

	// Name identifies the strategy in logs and traces.
	Name() string
}
