// Package fastparser holds the zero-allocation byte helpers the streaming
// parser uses on each completed line: header splitting, whitespace trimming,
// case-insensitive comparison and integer parsing.
package fastparser

import (
	"bytes"
	"errors"
)

// Header line errors.
var (
	ErrNoColon      = errors.New("missing colon")
	ErrEmptyName    = errors.New("empty header name")
	ErrSpaceInName  = errors.New("whitespace in header name")
	ErrObsoleteFold = errors.New("obsolete line folding")
)

// SplitHeaderLine splits "Name: value" at the first colon and trims optional
// whitespace around the value.
func SplitHeaderLine(line []byte) (name, value []byte, err error) {
	if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		return nil, nil, ErrObsoleteFold
	}

	colon := bytes.IndexByte(line, ':')
	if colon < 0 {
		return nil, nil, ErrNoColon
	}
	if colon == 0 {
		return nil, nil, ErrEmptyName
	}

	name = line[:colon]
	// RFC 9112: no whitespace between field-name and colon
	if bytes.ContainsAny(name, " \t") {
		return nil, nil, ErrSpaceInName
	}

	return name, TrimOWS(line[colon+1:]), nil
}

// TrimOWS trims optional whitespace (SP and HTAB) from both ends of b.
func TrimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

// EqualFold is a fast ASCII case-insensitive comparison of b against a
// known token.
func EqualFold(b []byte, token string) bool {
	if len(b) != len(token) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if lower(b[i]) != lower(token[i]) {
			return false
		}
	}
	return true
}

// HasToken reports whether the comma-separated list in value contains token,
// compared case-insensitively ("gzip, chunked" has "chunked").
func HasToken(value []byte, token string) bool {
	for len(value) > 0 {
		var part []byte
		if i := bytes.IndexByte(value, ','); i >= 0 {
			part, value = value[:i], value[i+1:]
		} else {
			part, value = value, nil
		}
		if EqualFold(TrimOWS(part), token) {
			return true
		}
	}
	return false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
