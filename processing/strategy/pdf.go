package strategy

import (
	"bytes"
	gocontext "context"
	"fmt"
	"io"
	"os"

	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/rfc822html"
)

// HTMLRenderer renders an HTML document to PDF.
type HTMLRenderer interface {
	Render(ctx gocontext.Context, input io.Reader, output io.Writer) error
}

// Rfc822PDF renders an RFC 822 message as a PDF: parse the message, render
// it to an HTML document via rfc822html, then pipe the HTML through an
// external HTML-to-PDF renderer. Registered only for message/rfc822.
type Rfc822PDF struct {
	Renderer HTMLRenderer
}

// Name identifies the strategy in logs and traces.
func (Rfc822PDF) Name() string { return "rfc822-pdf" }

// Derive writes the rendered PDF to a fresh scratch file and emits it as
// rendered.pdf.
func (s Rfc822PDF) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, checksum string) error {
	artifact, err := s.derive(ctx, pctx, inputPath, checksum)
	if err != nil {
		return pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("render rfc822 to pdf: %w", err)})
	}
	return pctx.AddOutput(ctx, processing.Output{Artifact: artifact})
}

func (s Rfc822PDF) derive(ctx gocontext.Context, pctx processing.Context, inputPath string, checksum string) (processing.DerivedArtifact, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("read input file: %w", err)
	}

	message, err := rfc822html.Parse(raw)
	if err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("parse message: %w", err)
	}

	var html bytes.Buffer
	transformer := rfc822html.NewMessageTransformer(rfc822html.NewHtmlMessageVisitor())
	if err := transformer.Transform(message, &html); err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("transform message to html: %w", err)
	}

	var pdf bytes.Buffer
	htmlReader := bytes.NewReader(html.Bytes())
	if err := s.Renderer.Render(ctx, htmlReader, &pdf); err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("render html to pdf: %w", err)
	}

	scratch, err := processing.NewTempFile()
	if err != nil {
		return processing.DerivedArtifact{}, fmt.Errorf("create scratch file: %w", err)
	}
	if err := os.WriteFile(scratch.Path(), pdf.Bytes(), 0o600); err != nil {
		scratch.Close()
		return processing.DerivedArtifact{}, fmt.Errorf("write pdf to scratch file: %w", err)
	}

	return processing.NewDerived(pctx, processing.NameRenderedPDF, scratch, processing.MediaPDF, checksum), nil
}
