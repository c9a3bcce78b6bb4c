// Package dispatch selects the derivation strategies that apply to a given
// media type and set of requested kinds. Dispatch is pure: the same
// (mediaType, kinds) pair always produces the same strategy list, in the
// same order, so the engine can run dispatch without synchronization.
package dispatch

import (
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/strategy"
)

// noTextExtraction lists the media types text extraction is never
// attempted against - self-describing formats where a dedicated strategy
// (or no strategy at all) already handles the content better than a raw
// text dump would.
var noTextExtraction = map[string]bool{
	processing.MediaTextPlain:      true,
	processing.MediaTextCSS:        true,
	processing.MediaTextCSV:        true,
	processing.MediaTextJavaScript: true,
	processing.MediaZip:            true,
	processing.MediaMbox:           true,
}

// Table selects strategies by media type. Each Strategy field is
// instantiated once and is safe for concurrent use across every Process
// call dispatch serves.
type Table struct {
	Text       strategy.Strategy
	Metadata   strategy.Strategy
	Pdf        strategy.Strategy
	MboxEmb    strategy.Strategy
	Rfc822Emb  strategy.Strategy
	ZipEmb     strategy.Strategy
}

// Strategies returns the strategies that apply to mediaType for the
// requested kinds, in the stable order Text, Metadata, Pdf, Embedded.
// Each sub-table consults only the requested kind and mediaType - the four
// tables are otherwise independent of one another.
func (t Table) Strategies(mediaType string, kinds processing.KindSet) []strategy.Strategy {
	var out []strategy.Strategy

	if kinds.Has(processing.KindText) {
		if s := t.textStrategy(mediaType); s != nil {
			out = append(out, s)
		}
	}
	if kinds.Has(processing.KindMetadata) {
		if s := t.metadataStrategy(mediaType); s != nil {
			out = append(out, s)
		}
	}
	if kinds.Has(processing.KindPdf) {
		if s := t.pdfStrategy(mediaType); s != nil {
			out = append(out, s)
		}
	}
	if kinds.Has(processing.KindEmbedded) {
		if s := t.embeddedStrategy(mediaType); s != nil {
			out = append(out, s)
		}
	}

	return out
}

func (t Table) textStrategy(mediaType string) strategy.Strategy {
	if noTextExtraction[mediaType] {
		return nil
	}
	return t.Text
}

func (t Table) metadataStrategy(string) strategy.Strategy {
	return t.Metadata
}

func (t Table) pdfStrategy(mediaType string) strategy.Strategy {
	if mediaType == processing.MediaRFC822 {
		return t.Pdf
	}
	return nil
}

func (t Table) embeddedStrategy(mediaType string) strategy.Strategy {
	switch mediaType {
	case processing.MediaZip:
		return t.ZipEmb
	case processing.MediaMbox:
		return t.MboxEmb
	case processing.MediaRFC822:
		return t.Rfc822Emb
	default:
		return nil
	}
}
