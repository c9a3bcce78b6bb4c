package rfc822html

import (
	"html"
	"strings"
)

// renderedTextHeaders is the allowlist of plain-text headers the HTML
// rendering includes. Every other text header (Message-ID, MIME-Version,
// Content-Transfer-Encoding, ...) is omitted from the rendering.
var renderedTextHeaders = map[string]bool{
	"Date": true, "From": true, "To": true, "CC": true, "BCC": true, "Subject": true,
}

// HtmlMessageVisitor renders a Message as a minimal HTML document: one
// <div> per rendered header, a <br> separating headers from body, and one
// <div> per body part with each line of a text part wrapped in <p>.
type HtmlMessageVisitor struct {
	DefaultVisitor
	formatter MessageFormatter
}

// NewHtmlMessageVisitor returns a ready-to-use HtmlMessageVisitor.
func NewHtmlMessageVisitor() *HtmlMessageVisitor {
	return &HtmlMessageVisitor{}
}

func (HtmlMessageVisitor) OnHeaderPrefix() (string, bool)      { return "<div>", true }
func (HtmlMessageVisitor) OnHeaderSuffix() (string, bool)      { return "</div>", true }
func (HtmlMessageVisitor) OnHeadBodySeparator() (string, bool) { return "<br>\n", true }
func (HtmlMessageVisitor) OnPartPrefix() (string, bool)        { return "<div>", true }
func (HtmlMessageVisitor) OnPartSuffix() (string, bool)        { return "</div>", true }

func (v HtmlMessageVisitor) OnHeaderAddresses(name string, addresses []Addr) (string, bool) {
	formatted, ok := v.formatter.FormatAddresses(addresses)
	if !ok {
		return "", false
	}
	return "<b>" + name + "</b>: " + html.EscapeString(formatted), true
}

func (HtmlMessageVisitor) OnHeaderText(name, text string) (string, bool) {
	if !renderedTextHeaders[name] {
		return "", false
	}
	return "<b>" + name + "</b>: " + html.EscapeString(text), true
}

func (v HtmlMessageVisitor) OnHeaderTextList(name string, values []string) (string, bool) {
	formatted, ok := v.formatter.FormatTextList(values)
	if !ok {
		return "", false
	}
	return "<b>" + name + "</b>: " + html.EscapeString(formatted), true
}

func (HtmlMessageVisitor) OnHeaderDateTime(name, formatted string) (string, bool) {
	return "<b>" + name + "</b>: " + html.EscapeString(formatted), true
}

func (HtmlMessageVisitor) OnHeaderContentType(ContentType) (string, bool) { return "", false }

func (HtmlMessageVisitor) OnPartText(value string) string {
	lines := strings.Split(value, "\n")
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = "<p>" + html.EscapeString(strings.TrimSuffix(line, "\r")) + "</p>"
	}
	return strings.Join(rendered, "\n")
}
