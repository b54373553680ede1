package httpparser

import (
	"fmt"

	"github.com/shapestone/shape-httpparser/internal/fastparser"
	"github.com/shapestone/shape-httpparser/internal/linescan"
)

// bodyDecoder is the framing strategy chosen once the headers are complete.
//
// step consumes a prefix of data and returns the number of bytes consumed,
// the body bytes among them that must be delivered to the data callback, and
// whether the body is finished. A step that consumes nothing and is not done
// needs more input.
type bodyDecoder interface {
	step(p *Parser, data []byte) (n int, body []byte, done bool, err *ParseError)

	// atEOF reports whether the end of the stream legitimately ends the body.
	atEOF() bool
}

// noBody completes as soon as it is stepped.
type noBody struct{}

func (noBody) step(*Parser, []byte) (int, []byte, bool, *ParseError) { return 0, nil, true, nil }

func (noBody) atEOF() bool { return true }

// contentLength forwards exactly remaining bytes.
type contentLength struct {
	remaining int64
}

func (d *contentLength) step(_ *Parser, data []byte) (int, []byte, bool, *ParseError) {
	if d.remaining == 0 {
		return 0, nil, true, nil
	}
	if len(data) == 0 {
		return 0, nil, false, nil
	}

	n := len(data)
	if int64(n) > d.remaining {
		n = int(d.remaining)
	}
	d.remaining -= int64(n)
	return n, data[:n], d.remaining == 0, nil
}

func (d *contentLength) atEOF() bool { return d.remaining == 0 }

// untilEOF forwards everything; only SetEOF ends the body.
type untilEOF struct{}

func (untilEOF) step(_ *Parser, data []byte) (int, []byte, bool, *ParseError) {
	return len(data), data, false, nil
}

func (untilEOF) atEOF() bool { return true }

type chunkState int

const (
	chunkSize chunkState = iota
	chunkData
	chunkDataCR
	chunkDataLF
	chunkTrailer
	chunkDone
)

// chunked decodes chunked transfer-coding. Size lines and trailer lines go
// through the parser's line scanner so they may be split across fragments.
type chunked struct {
	lines     *linescan.Scanner
	state     chunkState
	remaining int64
}

func newChunked(lines *linescan.Scanner) *chunked {
	return &chunked{lines: lines}
}

func (d *chunked) step(p *Parser, data []byte) (int, []byte, bool, *ParseError) {
	switch d.state {
	case chunkSize:
		line, n, ok, err := d.lines.Next(data)
		if err != nil {
			return 0, nil, false, scanError(ErrInvalidChunkSize, err)
		}
		if !ok {
			return n, nil, false, nil
		}
		size, err := fastparser.ParseChunkSize(line)
		if err != nil {
			return 0, nil, false, newParseError(ErrInvalidChunkSize, fmt.Sprintf("%q: %v", line, err))
		}
		if size == 0 {
			d.state = chunkTrailer
		} else {
			d.remaining = size
			d.state = chunkData
		}
		return n, nil, false, nil

	case chunkData:
		if len(data) == 0 {
			return 0, nil, false, nil
		}
		n := len(data)
		if int64(n) > d.remaining {
			n = int(d.remaining)
		}
		d.remaining -= int64(n)
		if d.remaining == 0 {
			d.state = chunkDataCR
		}
		return n, data[:n], false, nil

	case chunkDataCR:
		if len(data) == 0 {
			return 0, nil, false, nil
		}
		switch data[0] {
		case '\r':
			d.state = chunkDataLF
		case '\n':
			d.state = chunkSize
		default:
			return 0, nil, false, newParseError(ErrInvalidChunkSize, "missing CRLF after chunk data")
		}
		return 1, nil, false, nil

	case chunkDataLF:
		if len(data) == 0 {
			return 0, nil, false, nil
		}
		if data[0] != '\n' {
			return 0, nil, false, newParseError(ErrInvalidChunkSize, "missing LF after chunk data")
		}
		d.state = chunkSize
		return 1, nil, false, nil

	case chunkTrailer:
		line, n, ok, err := d.lines.Next(data)
		if err != nil {
			return 0, nil, false, scanError(ErrMalformedHeader, err)
		}
		if !ok {
			return n, nil, false, nil
		}
		if len(line) == 0 {
			d.state = chunkDone
			return n, nil, true, nil
		}
		if err := p.addHeader(line, true); err != nil {
			return 0, nil, false, err
		}
		return n, nil, false, nil

	default:
		return 0, nil, true, nil
	}
}

func (d *chunked) atEOF() bool { return d.state == chunkDone }

// scanError maps a line scanner failure onto an error kind.
func scanError(kind ErrorKind, err error) *ParseError {
	if err == linescan.ErrLineTooLong {
		kind = ErrLineTooLong
	}
	return wrapParseError(kind, err)
}
