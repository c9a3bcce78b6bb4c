// Package magic wraps github.com/gabriel-vasile/mimetype, the last and
// most conservative step in the MIME identifier's chain: a pure-Go content
// sniffer with no external process to shell out to.
package magic

import (
	stdmime "mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Client identifies media types by content sniffing.
type Client struct{}

// New returns a Client.
func New() *Client { return &Client{} }

// DetectFile returns the sniffed media type of the file at path, stripped
// of parameters (e.g. "text/plain; charset=utf-8" becomes "text/plain").
func (Client) DetectFile(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	if base, _, err := stdmime.ParseMediaType(mtype.String()); err == nil {
		return base, nil
	}
	return strings.TrimSpace(mtype.String()), nil
}
