// Package rfc822html renders an RFC 822 message to an HTML document, which
// the PDF derivation strategy then hands to wkhtmltopdf. Header and body
// traversal is driven by a MessageVisitor so the HTML rendering rules live
// entirely in HtmlMessageVisitor, separate from the walk itself.
package rfc822html

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"
)

// HeaderKind classifies a header's value so the transformer can dispatch to
// the right MessageVisitor hook, mirroring mail_parser's HeaderValue union.
type HeaderKind int

const (
	// KindText is a header whose value is a single opaque string (Subject,
	// Message-ID, MIME-Version, ...).
	KindText HeaderKind = iota
	// KindTextList is a header whose value is a comma-separated list of
	// strings (Keywords).
	KindTextList
	// KindAddressList is a header carrying one or more mailbox addresses
	// (From, To, Cc, Bcc, Reply-To, Sender).
	KindAddressList
	// KindDateTime is a header carrying an RFC 5322 date-time (Date,
	// Resent-Date).
	KindDateTime
	// KindContentType is the Content-Type header.
	KindContentType
)

// ContentType is a parsed Content-Type header value.
type ContentType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Header is a single classified header, carrying only the field matching
// its Kind.
type Header struct {
	Name        string
	Kind        HeaderKind
	Text        string
	TextList    []string
	Addresses   []mail.Address
	Time        time.Time
	ContentType ContentType
}

// BodyPart is a text or HTML part of the message body worth rendering.
// Attachments and inline binary parts are not body parts; they are
// extracted separately by the embedded-attachment strategy.
type BodyPart struct {
	Text string
}

// Message is a parsed RFC 822 message: its headers in wire order, and its
// HTML and plain-text body parts in document order.
type Message struct {
	Headers    []Header
	HTMLBodies []BodyPart
	TextBodies []BodyPart
}

// addressHeaders and the other header-name sets below classify a header by
// name. Header names are matched case-insensitively, as RFC 5322 requires.
var addressHeaders = map[string]bool{
	"from": true, "to": true, "cc": true, "bcc": true,
	"reply-to": true, "sender": true, "resent-from": true, "resent-to": true,
}

var dateTimeHeaders = map[string]bool{
	"date": true, "resent-date": true,
}

var textListHeaders = map[string]bool{
	"keywords": true,
}

// Parse parses raw as an RFC 822 message.
func Parse(raw []byte) (*Message, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse rfc822 message: %w", err)
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("read rfc822 message body: %w", err)
	}

	headers := classifyHeaders(rawHeaderPairs(raw))

	htmlBodies, textBodies, err := extractBodies(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), body)
	if err != nil {
		return nil, fmt.Errorf("extract rfc822 message body: %w", err)
	}

	return &Message{Headers: headers, HTMLBodies: htmlBodies, TextBodies: textBodies}, nil
}

// rawHeaderPairs splits the header section of an RFC 822 message into
// ordered (name, value) pairs, unfolding continuation lines. net/mail's
// own Header type discards wire order (it is a map), which the transformer
// needs to reproduce a stable, readable rendering.
func rawHeaderPairs(raw []byte) []rawHeader {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += " " + strings.TrimSpace(line)
			continue
		}
		lines = append(lines, line)
	}

	pairs := make([]rawHeader, 0, len(lines))
	for _, line := range lines {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		pairs = append(pairs, rawHeader{
			name:  strings.TrimSpace(line[:idx]),
			value: strings.TrimSpace(line[idx+1:]),
		})
	}
	return pairs
}

type rawHeader struct {
	name  string
	value string
}

var wordDecoder = new(mime.WordDecoder)

func classifyHeaders(pairs []rawHeader) []Header {
	headers := make([]Header, 0, len(pairs))
	for _, p := range pairs {
		if h, ok := classifyHeader(p.name, p.value); ok {
			headers = append(headers, h)
		}
	}
	return headers
}

func classifyHeader(name, value string) (Header, bool) {
	if value == "" {
		return Header{}, false
	}
	key := strings.ToLower(name)

	switch {
	case key == "content-type":
		mt, params, err := mime.ParseMediaType(value)
		if err != nil {
			return Header{}, false
		}
		typ, subtype, _ := strings.Cut(mt, "/")
		return Header{Name: name, Kind: KindContentType, ContentType: ContentType{Type: typ, Subtype: subtype, Params: params}}, true

	case dateTimeHeaders[key]:
		t, err := mail.ParseDate(value)
		if err != nil {
			return Header{}, false
		}
		return Header{Name: name, Kind: KindDateTime, Time: t}, true

	case addressHeaders[key]:
		addrs, err := mail.ParseAddressList(value)
		if err != nil || len(addrs) == 0 {
			return Header{}, false
		}
		list := make([]mail.Address, len(addrs))
		for i, a := range addrs {
			list[i] = *a
		}
		return Header{Name: name, Kind: KindAddressList, Addresses: list}, true

	case textListHeaders[key]:
		parts := strings.Split(value, ",")
		list := make([]string, 0, len(parts))
		for _, part := range parts {
			if text := strings.TrimSpace(decodeWords(part)); text != "" {
				list = append(list, text)
			}
		}
		if len(list) == 0 {
			return Header{}, false
		}
		return Header{Name: name, Kind: KindTextList, TextList: list}, true

	default:
		return Header{Name: name, Kind: KindText, Text: decodeWords(value)}, true
	}
}

// decodeWords decodes RFC 2047 encoded-words in a header value, falling
// back to the raw value if it is not (or only partially) encoded.
func decodeWords(value string) string {
	decoded, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractBodies walks the message body according to its Content-Type,
// collecting its renderable text and HTML parts in document order.
// Attachments (parts with Content-Disposition: attachment) are excluded;
// they are the embedded-attachment strategy's concern, not the renderer's.
func extractBodies(contentType, transferEncoding string, body []byte) (html, text []BodyPart, err error) {
	decoded, err := decodeTransferEncoding(body, transferEncoding)
	if err != nil {
		return nil, nil, err
	}

	mt, params, err := mime.ParseMediaType(defaultContentType(contentType))
	if err != nil {
		return nil, text, nil
	}

	if !strings.HasPrefix(mt, "multipart/") {
		switch mt {
		case "text/html":
			return []BodyPart{{Text: string(decoded)}}, nil, nil
		default:
			return nil, []BodyPart{{Text: string(decoded)}}, nil
		}
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, []BodyPart{{Text: string(decoded)}}, nil
	}
	return walkMultipart(decoded, boundary)
}

func defaultContentType(contentType string) string {
	if contentType == "" {
		return "text/plain; charset=us-ascii"
	}
	return contentType
}

func walkMultipart(body []byte, boundary string) (html, text []BodyPart, err error) {
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read multipart entry: %w", err)
		}

		disposition := part.Header.Get("Content-Disposition")
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(disposition)), "attachment") {
			continue
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, nil, fmt.Errorf("read multipart part content: %w", err)
		}
		decoded, err := decodeTransferEncoding(content, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return nil, nil, err
		}

		partContentType := part.Header.Get("Content-Type")
		mt, params, err := mime.ParseMediaType(defaultContentType(partContentType))
		if err != nil {
			continue
		}

		if strings.HasPrefix(mt, "multipart/") {
			nestedHTML, nestedText, err := walkMultipart(decoded, params["boundary"])
			if err != nil {
				return nil, nil, err
			}
			html = append(html, nestedHTML...)
			text = append(text, nestedText...)
			continue
		}

		switch mt {
		case "text/html":
			html = append(html, BodyPart{Text: string(decoded)})
		case "text/plain":
			text = append(text, BodyPart{Text: string(decoded)})
		}
	}
	return html, text, nil
}

func decodeTransferEncoding(body []byte, encoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("decode quoted-printable body: %w", err)
		}
		return decoded, nil
	default:
		return body, nil
	}
}
