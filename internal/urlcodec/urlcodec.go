// Package urlcodec splits a request target into path and query and decodes
// percent-escapes.
//
// Decoding is lenient: a '%' that is not followed by two hex digits is
// copied through literally instead of failing.
package urlcodec

import "strings"

// Split cuts a raw request target at the first '?'.
func Split(raw string) (path, query string) {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}

// DecodePath percent-decodes a path. '+' is left untouched.
func DecodePath(s string) string {
	return decode(s, false)
}

// DecodeQueryComponent percent-decodes a query name or value, turning '+'
// into a space.
func DecodeQueryComponent(s string) string {
	return decode(s, true)
}

// ParseQuery splits a query string on '&' and calls visit with every decoded
// name/value pair, in order. A pair without '=' has an empty value. Empty
// pairs ("a=1&&b=2") are skipped.
func ParseQuery(query string, visit func(name, value string)) {
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		visit(DecodeQueryComponent(name), DecodeQueryComponent(value))
	}
}

func decode(s string, plusIsSpace bool) string {
	if !needsDecode(s, plusIsSpace) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		case c == '+' && plusIsSpace:
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func needsDecode(s string, plusIsSpace bool) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' || (plusIsSpace && s[i] == '+') {
			return true
		}
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
