// Package identity computes the deduplication checksum used to give every
// artifact a stable identity, which in turn feeds the provenance path built
// for it in the archive.
package identity

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/mail"
	"os"

	"github.com/ingestkit/ingest/processing"
)

// chunkSize is the buffer size used for streaming reads into the MD5
// context. 1 MiB, matching the original implementation's bytesize::MB
// chunking.
const chunkSize = 1 << 20

// ChecksumOfPath computes the deduplication checksum of the file at path,
// dispatching on mediaType. Only I/O errors on the file surface as errors;
// a message/rfc822 payload that fails to parse degrades to a whole-payload
// checksum rather than failing.
func ChecksumOfPath(path, mediaType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	return ChecksumOfStream(f, mediaType)
}

// ChecksumOfStream computes the deduplication checksum from reader,
// dispatching on mediaType. For every media type other than
// message/rfc822, this streams the reader through MD5 without buffering
// the whole payload in memory. message/rfc822 requires the full payload to
// locate the Message-ID header, so it is read into memory once.
func ChecksumOfStream(r io.Reader, mediaType string) (string, error) {
	if mediaType == processing.MediaRFC822 {
		return checksumMessage(r)
	}
	return checksumMD5(r)
}

// checksumMD5 streams r through an MD5 context in chunkSize reads.
func checksumMD5(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("read content for checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// checksumMessage implements the message/rfc822 dedup rule: MD5 of the raw
// Message-ID header bytes if present, otherwise MD5 of the whole message.
// A header-parse failure is not an error - it degrades to the whole-payload
// checksum, same as an absent header.
func checksumMessage(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read message for checksum: %w", err)
	}

	if id, ok := messageID(raw); ok {
		return checksumMD5(bytes.NewReader(id))
	}
	return checksumMD5(bytes.NewReader(raw))
}

// messageID extracts the raw bytes of the Message-ID header from an RFC822
// message, without dequoting (the angle brackets are kept verbatim; no
// RFC 2047 decoding is applied). Returns ok=false if the message cannot be
// parsed as a mail message or carries no Message-ID header.
func messageID(raw []byte) ([]byte, bool) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	id := msg.Header.Get("Message-Id")
	if id == "" {
		return nil, false
	}
	return []byte(id), true
}
