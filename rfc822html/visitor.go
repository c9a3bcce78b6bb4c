package rfc822html

// MessageVisitor customizes how MessageTransformer renders a Message's
// headers and body parts. Every method has a default no-op implementation
// via DefaultVisitor, so a concrete visitor only needs to override the
// hooks it cares about - the same default-method pattern mail_parser's
// trait offers, expressed here through embedding instead of inheritance.
type MessageVisitor interface {
	// OnHeaderPrefix/OnHeaderSuffix wrap every rendered header line.
	OnHeaderPrefix() (string, bool)
	OnHeaderSuffix() (string, bool)
	// OnHeadBodySeparator is written once, between the headers and the body.
	OnHeadBodySeparator() (string, bool)
	// OnPartPrefix/OnPartSuffix wrap every rendered body part.
	OnPartPrefix() (string, bool)
	OnPartSuffix() (string, bool)

	// OnHeaderAddresses renders an address-list header (From, To, Cc, ...).
	// Returning ok=false omits the header entirely.
	OnHeaderAddresses(name string, addresses []Addr) (string, bool)
	// OnHeaderText renders a plain text header (Subject, Message-ID, ...).
	OnHeaderText(name, text string) (string, bool)
	// OnHeaderTextList renders a comma-separated header (Keywords).
	OnHeaderTextList(name string, values []string) (string, bool)
	// OnHeaderDateTime renders a date-time header (Date).
	OnHeaderDateTime(name, formatted string) (string, bool)
	// OnHeaderContentType renders the Content-Type header.
	OnHeaderContentType(ct ContentType) (string, bool)

	// OnPartText renders a text/plain body part.
	OnPartText(value string) string
	// OnPartHTML renders a text/html body part.
	OnPartHTML(value string) string
}

// Addr is a single named-or-bare mailbox address, the rendering-layer
// analogue of mail_parser's Addr.
type Addr struct {
	Name    string
	Address string
}

// DefaultVisitor implements every MessageVisitor hook as a no-op (ok=false,
// or the value unchanged for the body-part hooks). Embed it in a concrete
// visitor and override only the hooks that need custom behavior.
type DefaultVisitor struct{}

func (DefaultVisitor) OnHeaderPrefix() (string, bool)        { return "", false }
func (DefaultVisitor) OnHeaderSuffix() (string, bool)        { return "", false }
func (DefaultVisitor) OnHeadBodySeparator() (string, bool)   { return "", false }
func (DefaultVisitor) OnPartPrefix() (string, bool)          { return "", false }
func (DefaultVisitor) OnPartSuffix() (string, bool)          { return "", false }

func (DefaultVisitor) OnHeaderAddresses(string, []Addr) (string, bool)    { return "", false }
func (DefaultVisitor) OnHeaderText(string, string) (string, bool)        { return "", false }
func (DefaultVisitor) OnHeaderTextList(string, []string) (string, bool)  { return "", false }
func (DefaultVisitor) OnHeaderDateTime(string, string) (string, bool)    { return "", false }
func (DefaultVisitor) OnHeaderContentType(ContentType) (string, bool)    { return "", false }

func (DefaultVisitor) OnPartText(value string) string { return value }
func (DefaultVisitor) OnPartHTML(value string) string { return value }
