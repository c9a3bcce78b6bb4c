package processing

// Canonical media types consulted by the dispatch table (processing/dispatch)
// and by the strategies that special-case them. Media types outside this set
// are handled by the default strategies where applicable.
const (
	MediaMbox            = "application/mbox"
	MediaRFC822          = "message/rfc822"
	MediaZip             = "application/zip"
	MediaPDF             = "application/pdf"
	MediaJSON            = "application/json"
	MediaTextPlain       = "text/plain"
	MediaJPEG            = "image/jpeg"
	MediaOctetStream     = "application/octet-stream"
	MediaTextCSS         = "text/css"
	MediaTextCSV         = "text/csv"
	MediaTextJavaScript  = "text/javascript"
)

// The closed set of archive-internal leaf names a Derived artifact may use.
const (
	NameExtractedText = "extracted.txt"
	NameMetadataJSON  = "metadata.json"
	NameRenderedPDF   = "rendered.pdf"
)
