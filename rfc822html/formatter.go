package rfc822html

import "strings"

// MessageFormatter provides the default formatting rules for mail_parser
// style header values: addresses, address lists, and text lists. It has no
// state; it exists as a type so visitors can embed or call it explicitly,
// matching the teacher's pattern of small stateless collaborators.
type MessageFormatter struct{}

// FormatAddress renders a single address as:
//  1. Name and address present -> "Name <address>"
//  2. Name only                -> "Name"
//  3. Address only             -> "<address>"
//  4. Neither                  -> ok=false
func (MessageFormatter) FormatAddress(a Addr) (string, bool) {
	switch {
	case a.Name != "" && a.Address != "":
		return a.Name + " <" + a.Address + ">", true
	case a.Name != "":
		return a.Name, true
	case a.Address != "":
		return "<" + a.Address + ">", true
	default:
		return "", false
	}
}

// FormatAddresses renders a list of addresses, each via FormatAddress,
// joined with ", ". Returns ok=false if the list is empty or every address
// formats to nothing.
func (f MessageFormatter) FormatAddresses(addresses []Addr) (string, bool) {
	var parts []string
	for _, a := range addresses {
		if s, ok := f.FormatAddress(a); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

// FormatTextList renders a list of strings joined with ", ", dropping
// empty entries. Returns ok=false if nothing remains.
func (MessageFormatter) FormatTextList(values []string) (string, bool) {
	var parts []string
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}
