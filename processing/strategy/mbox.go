package strategy

import (
	"bufio"
	gocontext "context"
	"fmt"
	"os"
	"strings"

	"github.com/ingestkit/ingest/identity"
	"github.com/ingestkit/ingest/processing"
)

// MboxEmbedded splits an mbox file into its individual messages. It
// produces no Derived artifact of its own - only the messages it discovers,
// each emitted as an Embedded artifact of media type message/rfc822.
type MboxEmbedded struct{}

// Name identifies the strategy in logs and traces.
func (MboxEmbedded) Name() string { return "mbox-embedded" }

// Derive scans inputPath for mbox message boundaries (a line starting with
// "From " at the start of the file or immediately after a blank line,
// mirroring the convention every mbox reader uses) and emits one Embedded
// artifact per message found. A message that fails to spool to a temp file
// is reported as an error output and does not stop the remaining messages
// from being processed.
func (MboxEmbedded) Derive(ctx gocontext.Context, pctx processing.Context, inputPath string, _ string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open mbox file: %w", err)
	}
	defer f.Close()

	for message, err := range mboxMessages(f) {
		if err != nil {
			if outErr := pctx.AddOutput(ctx, processing.Output{Err: err}); outErr != nil {
				return outErr
			}
			continue
		}

		artifact, err := spoolMessage(pctx, message)
		if err != nil {
			if outErr := pctx.AddOutput(ctx, processing.Output{Err: fmt.Errorf("spool mbox message: %w", err)}); outErr != nil {
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

func spoolMessage(pctx processing.Context, message []byte) (processing.EmbeddedArtifact, error) {
	tmp, err := processing.NewTempFile()
	if err != nil {
		return processing.EmbeddedArtifact{}, fmt.Errorf("create temp file: %w", err)
	}
	if err := os.WriteFile(tmp.Path(), message, 0o600); err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("write message to temp file: %w", err)
	}

	checksum, err := identity.ChecksumOfPath(tmp.Path(), processing.MediaRFC822)
	if err != nil {
		tmp.Close()
		return processing.EmbeddedArtifact{}, fmt.Errorf("checksum message: %w", err)
	}

	return processing.NewEmbedded(pctx, "mbox-message.eml", tmp, processing.MediaRFC822, checksum), nil
}

// mboxMessages lazily splits an mbox stream into individual message bodies,
// each the lines between one "From " separator line and the next (or EOF).
// The separator line itself is not included in the message content. Lines
// are re-joined with "\n", so a CRLF line ending comes out as LF, and the
// message's final newline is dropped: the content is not byte-for-byte the
// input.
func mboxMessages(f *os.File) func(yield func([]byte, error) bool) {
	return func(yield func([]byte, error) bool) {
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

		var current strings.Builder
		inMessage := false
		atBlankLine := true

		flush := func() bool {
			if !inMessage {
				return true
			}
			return yield([]byte(strings.TrimSuffix(current.String(), "\n")), nil)
		}

		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "From ") && atBlankLine {
				if !flush() {
					return
				}
				current.Reset()
				inMessage = true
				atBlankLine = false
				continue
			}
			atBlankLine = line == ""
			if inMessage {
				current.WriteString(line)
				current.WriteByte('\n')
			}
		}

		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("scan mbox file: %w", err))
			return
		}
		flush()
	}
}
