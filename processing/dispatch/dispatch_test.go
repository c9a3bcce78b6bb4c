package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/processing/strategy"
)

func stubTable() Table {
	return Table{
		Text:      textStub{},
		Metadata:  metadataStub{},
		Pdf:       pdfStub{},
		MboxEmb:   mboxStub{},
		Rfc822Emb: rfc822Stub{},
		ZipEmb:    zipStub{},
	}
}

// Each stub implements strategy.Strategy trivially; a distinct type per
// slot makes assert.IsType readable below.
type textStub struct{ strategy.Strategy }
type metadataStub struct{ strategy.Strategy }
type pdfStub struct{ strategy.Strategy }
type mboxStub struct{ strategy.Strategy }
type rfc822Stub struct{ strategy.Strategy }
type zipStub struct{ strategy.Strategy }

func allKinds() processing.KindSet {
	return processing.KindSet{processing.KindText, processing.KindMetadata, processing.KindPdf, processing.KindEmbedded}
}

func TestStrategies_TextExcludedForSelfDescribingTypes(t *testing.T) {
	table := stubTable()
	for _, mt := range []string{processing.MediaTextPlain, processing.MediaTextCSS, processing.MediaTextCSV, processing.MediaTextJavaScript, processing.MediaZip, processing.MediaMbox} {
		strategies := table.Strategies(mt, processing.KindSet{processing.KindText})
		assert.Empty(t, strategies, "media type %s should not get text extraction", mt)
	}
}

func TestStrategies_TextAppliesElsewhere(t *testing.T) {
	table := stubTable()
	strategies := table.Strategies(processing.MediaJPEG, processing.KindSet{processing.KindText})
	assert.Len(t, strategies, 1)
	assert.IsType(t, textStub{}, strategies[0])
}

func TestStrategies_MetadataAppliesToEverything(t *testing.T) {
	table := stubTable()
	for _, mt := range []string{processing.MediaJPEG, processing.MediaZip, processing.MediaRFC822, processing.MediaTextPlain} {
		strategies := table.Strategies(mt, processing.KindSet{processing.KindMetadata})
		assert.Len(t, strategies, 1)
		assert.IsType(t, metadataStub{}, strategies[0])
	}
}

func TestStrategies_PdfOnlyForRfc822(t *testing.T) {
	table := stubTable()
	assert.Len(t, table.Strategies(processing.MediaRFC822, processing.KindSet{processing.KindPdf}), 1)
	assert.Empty(t, table.Strategies(processing.MediaJPEG, processing.KindSet{processing.KindPdf}))
}

func TestStrategies_EmbeddedOnlyForContainerTypes(t *testing.T) {
	table := stubTable()
	cases := map[string]strategy.Strategy{
		processing.MediaZip:    zipStub{},
		processing.MediaMbox:   mboxStub{},
		processing.MediaRFC822: rfc822Stub{},
	}
	for mt, want := range cases {
		strategies := table.Strategies(mt, processing.KindSet{processing.KindEmbedded})
		assert.Len(t, strategies, 1)
		assert.IsType(t, want, strategies[0])
	}
	assert.Empty(t, table.Strategies(processing.MediaJPEG, processing.KindSet{processing.KindEmbedded}))
}

func TestStrategies_StableOrderTextMetadataPdfEmbedded(t *testing.T) {
	table := stubTable()
	strategies := table.Strategies(processing.MediaRFC822, allKinds())
	assert.Len(t, strategies, 4)
	assert.IsType(t, textStub{}, strategies[0])
	assert.IsType(t, metadataStub{}, strategies[1])
	assert.IsType(t, pdfStub{}, strategies[2])
	assert.IsType(t, rfc822Stub{}, strategies[3])
}

func TestStrategies_PureFunctionSameInputsSameOutput(t *testing.T) {
	table := stubTable()
	a := table.Strategies(processing.MediaRFC822, allKinds())
	b := table.Strategies(processing.MediaRFC822, allKinds())
	assert.Equal(t, a, b, "spec.md L2")
}
