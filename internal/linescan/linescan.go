// Package linescan locates line boundaries in a byte stream that arrives in
// arbitrary fragments.
//
// A Scanner holds at most one incomplete line between calls. Lines that fit
// entirely inside one input fragment are returned as views into that
// fragment; only a line split across fragments is copied into the pending
// buffer.
package linescan

import (
	"bytes"
	"errors"
)

// ErrLineTooLong is returned when a line would exceed the scanner limit.
var ErrLineTooLong = errors.New("line exceeds maximum length")

// Scanner finds CRLF (or bare LF) terminated lines.
type Scanner struct {
	pending []byte
	max     int
}

// New creates a scanner that rejects lines longer than max bytes
// (terminator excluded). A max of 0 disables the limit.
func New(max int) *Scanner {
	return &Scanner{max: max}
}

// Next scans data for the end of the current line.
//
// When a terminator is found, Next returns the line without its terminator,
// the number of bytes of data consumed (up to and including the LF) and
// ok=true. The returned line is valid only until the next call to Next or
// Reset.
//
// When no terminator is found, all of data is appended to the pending buffer
// and Next returns n=len(data), ok=false.
func (s *Scanner) Next(data []byte) (line []byte, n int, ok bool, err error) {
	lf := bytes.IndexByte(data, '\n')
	if lf < 0 {
		if s.max > 0 && len(s.pending)+len(data) > s.max+1 {
			return nil, 0, false, ErrLineTooLong
		}
		s.pending = append(s.pending, data...)
		return nil, len(data), false, nil
	}

	if len(s.pending) == 0 {
		line = data[:lf]
	} else {
		s.pending = append(s.pending, data[:lf]...)
		line = s.pending
		// The backing array is reused for the next partial line; line stays
		// valid until then.
		s.pending = s.pending[:0]
	}

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	if s.max > 0 && len(line) > s.max {
		return nil, 0, false, ErrLineTooLong
	}
	return line, lf + 1, true, nil
}

// Pending reports how many bytes of an incomplete line are buffered.
func (s *Scanner) Pending() int {
	return len(s.pending)
}

// Reset drops any buffered partial line.
func (s *Scanner) Reset() {
	s.pending = s.pending[:0]
}

