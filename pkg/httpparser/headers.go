package httpparser

import "strings"

// Header is a single header field.
type Header struct {
	Key   string
	Value string
}

// HeaderMap holds one value per header name in first-insertion order. Names
// compare case-insensitively.
type HeaderMap []Header

// Get returns the value for key (case-insensitive) and whether it is present.
func (h HeaderMap) Get(key string) (string, bool) {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			return hdr.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing header with the same name
// (case-insensitive) in place, keeping its position and original spelling,
// or appends a new header.
func (h *HeaderMap) Set(key, value string) {
	for i, hdr := range *h {
		if strings.EqualFold(hdr.Key, key) {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Key: key, Value: value})
}

// Len returns the number of distinct header names.
func (h HeaderMap) Len() int { return len(h) }

// Clone returns a deep copy of the headers.
func (h HeaderMap) Clone() HeaderMap {
	if h == nil {
		return nil
	}
	clone := make(HeaderMap, len(h))
	copy(clone, h)
	return clone
}
