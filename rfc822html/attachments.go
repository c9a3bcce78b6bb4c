package rfc822html

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// Attachment is a non-body part of an RFC 822 message: an image, a
// document, a nested message, anything the message carries that isn't
// meant to be rendered inline.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ParseAttachments parses raw as an RFC 822 message and returns its
// attachment parts - every multipart entry that is not a rendered text or
// HTML body part. A single-part (non-multipart) message has no
// attachments.
func ParseAttachments(raw []byte) ([]Attachment, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse rfc822 message: %w", err)
	}
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("read rfc822 message body: %w", err)
	}

	mt, params, err := mime.ParseMediaType(defaultContentType(msg.Header.Get("Content-Type")))
	if err != nil || !strings.HasPrefix(mt, "multipart/") {
		return nil, nil
	}

	return walkAttachments(body, params["boundary"])
}

func walkAttachments(body []byte, boundary string) ([]Attachment, error) {
	if boundary == "" {
		return nil, nil
	}

	var attachments []Attachment
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart entry: %w", err)
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("read multipart part content: %w", err)
		}
		decoded, err := decodeTransferEncoding(content, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return nil, err
		}

		partContentType := part.Header.Get("Content-Type")
		mt, params, err := mime.ParseMediaType(defaultContentType(partContentType))
		if err != nil {
			continue
		}

		if strings.HasPrefix(mt, "multipart/") {
			nested, err := walkAttachments(decoded, params["boundary"])
			if err != nil {
				return nil, err
			}
			attachments = append(attachments, nested...)
			continue
		}

		if mt == "text/plain" || mt == "text/html" {
			disposition := strings.ToLower(strings.TrimSpace(part.Header.Get("Content-Disposition")))
			if !strings.HasPrefix(disposition, "attachment") {
				continue
			}
		}

		attachments = append(attachments, Attachment{
			Filename:    part.FileName(),
			ContentType: mt,
			Content:     decoded,
		})
	}
	return attachments, nil
}
