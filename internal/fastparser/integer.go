package fastparser

import (
	"bytes"
	"errors"
	"math"
)

// Integer parsing errors.
var (
	ErrNotDecimal = errors.New("not a decimal number")
	ErrNotHex     = errors.New("not a hexadecimal number")
	ErrOverflow   = errors.New("number overflows int64")
)

// ParseContentLength parses a non-negative decimal Content-Length value.
// Signs, spaces and empty input are rejected.
func ParseContentLength(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, ErrNotDecimal
	}

	var n int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, ErrNotDecimal
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, ErrOverflow
		}
		n = n*10 + d
	}
	return n, nil
}

// ParseChunkSize parses a chunk-size line: hex digits optionally followed by
// a ';'-delimited chunk extension, which is ignored.
func ParseChunkSize(line []byte) (int64, error) {
	if semi := bytes.IndexByte(line, ';'); semi >= 0 {
		line = line[:semi]
		// BWS is allowed before the extension delimiter
		for len(line) > 0 && (line[len(line)-1] == ' ' || line[len(line)-1] == '\t') {
			line = line[:len(line)-1]
		}
	}
	if len(line) == 0 {
		return 0, ErrNotHex
	}

	var n int64
	for _, c := range line {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, ErrNotHex
		}
		if n > (math.MaxInt64-int64(d))>>4 {
			return 0, ErrOverflow
		}
		n = n<<4 | int64(d)
	}
	return n, nil
}

// ParseStatusCode parses a three-digit status code.
func ParseStatusCode(b []byte) (int, bool) {
	if len(b) != 3 {
		return 0, false
	}
	code := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		code = code*10 + int(c-'0')
	}
	return code, true
}
