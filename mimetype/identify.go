// Package mimetype identifies the media type of a file by trying, in order,
// three collaborators of increasing cost and decreasing precision: xdg-mime
// against the system's shared MIME database, a running Tika server's
// content detector, and finally a pure-Go content sniffer. The first
// collaborator to return a confident answer wins.
package mimetype

import (
	"context"
	"fmt"

	"github.com/ingestkit/ingest/processing"
)

// XdgMimeDetector queries the system's shared MIME database.
type XdgMimeDetector interface {
	QueryFiletype(ctx context.Context, path string) (string, error)
}

// TikaDetector queries a running Tika server's content detector.
type TikaDetector interface {
	Detect(ctx context.Context, path string) (string, error)
}

// ContentSniffer sniffs a media type directly from file content.
type ContentSniffer interface {
	DetectFile(path string) (string, error)
}

// Identifier resolves the media type of a file, trying each collaborator in
// turn until one returns a result more specific than "I don't know".
type Identifier struct {
	xdgMime XdgMimeDetector
	tika    TikaDetector
	sniffer ContentSniffer
}

// New returns an Identifier. Any collaborator may be nil, in which case
// that step of the chain is skipped - useful in tests, or in deployments
// that run without a Tika sidecar.
func New(xdgMime XdgMimeDetector, tika TikaDetector, sniffer ContentSniffer) *Identifier {
	return &Identifier{xdgMime: xdgMime, tika: tika, sniffer: sniffer}
}

// Identify returns the media type of the file at path, or ok=false if none
// of the configured collaborators could identify it with any confidence.
func (id *Identifier) Identify(ctx context.Context, path string) (mediaType string, ok bool, err error) {
	mediaType, ok, err = id.identify(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("identify MIME type for %q: %w", path, err)
	}
	return mediaType, ok, nil
}

func (id *Identifier) identify(ctx context.Context, path string) (string, bool, error) {
	if id.xdgMime != nil {
		mt, err := id.xdgMime.QueryFiletype(ctx, path)
		if err != nil {
			return "", false, err
		}
		if mt != "" && mt != processing.MediaOctetStream && mt != processing.MediaTextPlain {
			return mt, true, nil
		}
	}

	if id.tika != nil {
		mt, err := id.tika.Detect(ctx, path)
		if err != nil {
			return "", false, err
		}
		if mt != "" && mt != processing.MediaOctetStream {
			return mt, true, nil
		}
	}

	if id.sniffer != nil {
		mt, err := id.sniffer.DetectFile(path)
		if err != nil {
			return "", false, err
		}
		if mt != "" && mt != processing.MediaOctetStream {
			return mt, true, nil
		}
	}

	return "", false, nil
}
