package strategy

import (
	gocontext "context"
	"fmt"
	"mime"
	"os"
	"strings"

	"github.com/ingestkit/ingest/identity"
	"github.com/ingestkit/ingest/processing"
	"github.com/ingestkit/ingest/rfc822html"
)

// Rfc822Embedded extracts the attachments of an RFC 822 message, emitting
// one Embedded artifact per attachment part. It produces no Derived
// artifact of its own.
type Rfc822Embedded struct{}

// Name identifies the strategy in logs and traces.
func (Rfc822Embedded) Name() string { return "rfc822-embedded" }

// Derive parses inputPath as an RFC 822 message and emits one Embedded
// artifact per attachment.
func (Rfc822Embedded) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, _ string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	attachments, err := rfc822html.ParseAttachments(raw)
	if err != nil {
		return fmt.Errorf("parse message attachments: %w", err)
	}

	for _, att := range attachments {
		artifact, err := spoolAttachment(pctx, att)
		if err != nil {
			if outErr := pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("spool attachment: %w", err)}); outErr != nil {
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

func spoolAttachment(pctx processing.Context, att rfc822html.Attachment) (processing.EmbeddedArtifact, error) {
	tmp, err := processing.NewTempFile()
	if err != nil {
		return processing.EmbeddedArtifact{}, fmt.Errorf("create temp file: %w", err)
	}
	if err := os.WriteFile(tmp.Path(), att.Content, 0o600); err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("write attachment to temp file: %w", err)
	}

	mediaType := attachmentMediaType(att.ContentType)
	checksum, err := identity.ChecksumOfPath(tmp.Path(), mediaType)
	if err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("checksum attachment: %w", err)
	}

	name := att.Filename
	if name == "" {
		name = "message-attachment.dat"
	}

	return processing.NewEmbedded(pctx, name, tmp, mediaType, checksum), nil
}

// attachmentMediaType normalizes a raw Content-Type header value down to
// "type/subtype", with no parameters.
func attachmentMediaType(contentType string) string {
	if contentType == "" {
		return processing.MediaOctetStream
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}
	return mt
}
