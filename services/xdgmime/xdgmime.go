// Package xdgmime wraps the xdg-mime CLI tool, the first and fastest
// collaborator the MIME identifier consults.
package xdgmime

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ingestkit/ingest/services/commandutil"
)

// Client queries xdg-mime for a file's media type.
type Client struct {
	binary string
}

// New returns a Client that invokes binary (typically "xdg-mime").
func New(binary string) *Client {
	return &Client{binary: binary}
}

// QueryFiletype runs `xdg-mime query filetype <path>` and returns its
// trimmed stdout, the file's media type according to the system's shared
// MIME database.
func (c *Client) QueryFiletype(ctx context.Context, path string) (string, error) {
	var out bytes.Buffer
	if err := commandutil.Run(ctx, c.binary, []string{"query", "filetype", path}, nil, &out); err != nil {
		return "", fmt.Errorf("xdg-mime failed to detect mimetype: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}
