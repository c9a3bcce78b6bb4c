// Package htmltopdf wraps the wkhtmltopdf CLI tool, rendering an HTML
// document read from stdin into a PDF written to stdout.
package htmltopdf

import (
	"context"
	"errors"
	"io"

	"github.com/ingestkit/ingest/services/commandutil"
)

var defaultArgs = []string{
	"--quiet",
	"--encoding", "utf-8",
	"--disable-external-links",
	"--disable-internal-links",
	"--disable-forms",
	"--disable-local-file-access",
	"--disable-javascript",
	"--disable-toc-back-links",
	"--disable-plugins",
	"--proxy", "bogusproxy",
	"--proxy-hostname-lookup",
	"-", "-",
}

// Client renders HTML to PDF via a wkhtmltopdf subprocess.
type Client struct {
	binary string
}

// New returns a Client that invokes binary (typically "wkhtmltopdf").
func New(binary string) *Client {
	return &Client{binary: binary}
}

// Render reads HTML from input and writes the rendered PDF to output.
//
// wkhtmltopdf is notorious for exiting with status 1 on cosmetic warnings
// (missing fonts, unreachable remote assets - the latter can't happen here
// since --disable-local-file-access and the bogus proxy cut off any network
// access) even when it produced a complete, correct PDF. Treat exit code 1
// as success; any other non-zero exit is a real failure.
func (c *Client) Render(ctx context.Context, input io.Reader, output io.Writer) error {
	err := commandutil.Run(ctx, c.binary, defaultArgs, input, output)
	if err == nil {
		return nil
	}

	var cmdErr *commandutil.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
		return nil
	}
	return err
}
