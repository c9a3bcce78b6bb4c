package rfc822html

import (
	"fmt"
	"io"
)

// MessageTransformer walks a parsed Message's headers and body parts,
// dispatching each to a MessageVisitor and writing whatever the visitor
// produces to the output writer. The walk order is always the same
// (headers in wire order, then HTML bodies if any, else text bodies);
// everything about how a given piece of content is rendered belongs to
// the visitor.
type MessageTransformer struct {
	visitor MessageVisitor
}

// NewMessageTransformer returns a transformer that renders with visitor.
func NewMessageTransformer(visitor MessageVisitor) *MessageTransformer {
	return &MessageTransformer{visitor: visitor}
}

// Transform writes the rendering of msg to w.
func (t *MessageTransformer) Transform(msg *Message, w io.Writer) error {
	for _, header := range msg.Headers {
		rendered, ok := t.renderHeader(header)
		if !ok {
			continue
		}
		if err := t.writeWrapped(w, t.visitor.OnHeaderPrefix, rendered, t.visitor.OnHeaderSuffix); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write header separator: %w", err)
		}
	}

	if err := t.writeIfSome(w, t.visitor.OnHeadBodySeparator); err != nil {
		return err
	}

	bodies := msg.HTMLBodies
	renderPart := t.visitor.OnPartHTML
	if len(bodies) == 0 {
		bodies = msg.TextBodies
		renderPart = t.visitor.OnPartText
	}

	for _, part := range bodies {
		rendered := renderPart(part.Text)
		if err := t.writeWrapped(w, t.visitor.OnPartPrefix, rendered, t.visitor.OnPartSuffix); err != nil {
			return err
		}
	}

	return nil
}

func (t *MessageTransformer) renderHeader(h Header) (string, bool) {
	switch h.Kind {
	case KindAddressList:
		addrs := make([]Addr, len(h.Addresses))
		for i, a := range h.Addresses {
			addrs[i] = Addr{Name: a.Name, Address: a.Address}
		}
		return t.visitor.OnHeaderAddresses(h.Name, addrs)
	case KindText:
		return t.visitor.OnHeaderText(h.Name, h.Text)
	case KindTextList:
		return t.visitor.OnHeaderTextList(h.Name, h.TextList)
	case KindDateTime:
		return t.visitor.OnHeaderDateTime(h.Name, h.Time.Format("2006-01-02T15:04:05-07:00"))
	case KindContentType:
		return t.visitor.OnHeaderContentType(h.ContentType)
	default:
		return "", false
	}
}

func (t *MessageTransformer) writeIfSome(w io.Writer, hook func() (string, bool)) error {
	value, ok := hook()
	if !ok {
		return nil
	}
	if _, err := io.WriteString(w, value); err != nil {
		return fmt.Errorf("write transformer output: %w", err)
	}
	return nil
}

func (t *MessageTransformer) writeWrapped(w io.Writer, prefix func() (string, bool), body string, suffix func() (string, bool)) error {
	if err := t.writeIfSome(w, prefix); err != nil {
		return err
	}
	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("write transformer output: %w", err)
	}
	return t.writeIfSome(w, suffix)
}
