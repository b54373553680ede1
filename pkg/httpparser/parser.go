package httpparser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shapestone/shape-httpparser/internal/fastparser"
	"github.com/shapestone/shape-httpparser/internal/linescan"
	"github.com/shapestone/shape-httpparser/internal/tokenizer"
	"github.com/shapestone/shape-httpparser/internal/urlcodec"
)

// Parser is an incremental HTTP/1.x message parser.
//
// A Parser must not be copied after first use. Use Reset to parse the next
// message on the same connection.
type Parser struct {
	noCopy noCopy

	settings Settings
	log      *zap.Logger
	token    *Token

	onData  DataCallback
	onEvent EventCallback

	phase          Phase
	paused         bool
	headerComplete bool
	complete       bool
	err            *ParseError

	msg     Message
	headers HeaderMap
	params  ParamMap

	lines *linescan.Scanner
	body  bodyDecoder

	// header-derived framing
	hasContentLength bool
	contentLength    int64
	chunked          bool
	upgrade          bool
	headerLines      int

	// bytes of the current message consumed so far
	offset int64
}

// New creates a parser bound to its own liveness token.
func New(settings Settings) *Parser {
	settings = prepareSettings(settings)

	p := &Parser{
		settings: settings,
		lines:    linescan.New(settings.MaxLineLength),
	}
	p.Attach(NewToken())
	return p
}

// Attach binds the parser to tok, replacing its current token. A nil tok
// binds a fresh one.
func (p *Parser) Attach(tok *Token) {
	if tok == nil {
		tok = NewToken()
	}
	p.token = tok
	p.log = p.settings.Logger.Named("httpparser").With(zap.Stringer("parser", tok))
}

// Token returns the liveness token the parser checks after every callback.
func (p *Parser) Token() *Token { return p.token }

// SetDataCallback registers the body data callback.
func (p *Parser) SetDataCallback(cb DataCallback) { p.onData = cb }

// SetEventCallback registers the lifecycle event callback.
func (p *Parser) SetEventCallback(cb EventCallback) { p.onEvent = cb }

// Parse feeds data to the parser and returns how many leading bytes of data
// were consumed. Fewer than len(data) bytes are consumed when the message
// completes (the rest belongs to the next message), when a callback pauses
// the parser, or on error. Parse consumes nothing while paused, after an
// error, after completion, or once the token is destroyed.
func (p *Parser) Parse(data []byte) int {
	if p.token.Destroyed() || p.err != nil || p.paused {
		return 0
	}
	if p.phase == PhaseDone {
		if len(data) > 0 {
			p.log.Debug("input after message completion ignored", zap.Int("bytes", len(data)))
		}
		return 0
	}

	pos := 0
	for {
		switch p.phase {
		case PhaseIdle, PhaseStartLine, PhaseHeaders:
			if pos == len(data) {
				return pos
			}

			line, n, ok, err := p.lines.Next(data[pos:])
			if err != nil {
				kind := ErrMalformedHeader
				if p.phase != PhaseHeaders {
					kind = ErrMalformedStartLine
				}
				p.fail(scanError(kind, err))
				return pos
			}
			pos += n
			p.offset += int64(n)

			if !ok {
				if p.phase == PhaseIdle {
					p.phase = PhaseStartLine
				}
				return pos
			}

			if p.phase != PhaseHeaders {
				if len(line) == 0 {
					p.phase = PhaseIdle
					continue
				}
				if perr := p.parseStartLine(line); perr != nil {
					p.fail(perr)
					return pos
				}
				p.phase = PhaseHeaders
				continue
			}

			if len(line) > 0 {
				if perr := p.addHeader(line, false); perr != nil {
					p.fail(perr)
					return pos
				}
				continue
			}

			p.selectBody()
			p.phase = PhaseBody
			p.headerComplete = true
			if !p.emitEvent(EventHeaderComplete) {
				return pos
			}
			if p.paused {
				return pos
			}

		case PhaseBody:
			n, body, done, perr := p.body.step(p, data[pos:])
			if perr != nil {
				p.fail(perr)
				return pos
			}
			pos += n
			p.offset += int64(n)

			if len(body) > 0 {
				if !p.emitData(body) {
					return pos
				}
				if p.paused {
					return pos
				}
			}
			if done {
				p.finish()
				return pos
			}
			if n == 0 {
				return pos
			}

		default:
			return pos
		}
	}
}

// Feed is Parse with the terminal error returned. Input supplied after the
// message completed yields an ErrPostCompletionInput error without changing
// the parser state.
func (p *Parser) Feed(data []byte) (int, error) {
	if p.phase == PhaseDone && p.err == nil && len(data) > 0 {
		p.log.Debug("input after message completion ignored", zap.Int("bytes", len(data)))
		return 0, newParseError(ErrPostCompletionInput, fmt.Sprintf("%d bytes", len(data)))
	}

	n := p.Parse(data)
	if p.err != nil {
		return n, p.err
	}
	return n, nil
}

// Pause stops the parser after the callback currently running returns.
func (p *Parser) Pause() { p.paused = true }

// Resume clears the pause flag. Already consumed data is not rescanned.
func (p *Parser) Resume() { p.paused = false }

// SetEOF signals the end of the transport stream and reports whether the
// message is complete. An until-EOF response body completes here; a stream
// that ends inside a start line, the headers or a framed body is an
// ErrPrematureEOF error.
func (p *Parser) SetEOF() bool {
	if p.token.Destroyed() || p.err != nil {
		return false
	}

	switch p.phase {
	case PhaseIdle:
		return false
	case PhaseDone:
		return true
	case PhaseBody:
		if p.body.atEOF() {
			p.finish()
			return true
		}
	}

	p.log.Debug("premature end of stream", zap.Stringer("phase", p.phase), zap.Int64("offset", p.offset))
	p.fail(newParseError(ErrPrematureEOF, "stream ended in "+p.phase.String()))
	return false
}

// Reset returns the parser to its initial state so it can parse the next
// message. Callbacks, settings and the token are kept.
func (p *Parser) Reset() {
	p.phase = PhaseIdle
	p.paused = false
	p.headerComplete = false
	p.complete = false
	p.err = nil

	p.msg = Message{}
	p.headers = p.headers[:0]
	p.params = p.params[:0]

	p.lines.Reset()
	p.body = nil

	p.hasContentLength = false
	p.contentLength = 0
	p.chunked = false
	p.upgrade = false
	p.headerLines = 0
	p.offset = 0
}

// Phase returns the current lifecycle phase.
func (p *Parser) Phase() Phase { return p.phase }

// Err returns the terminal parse error, if any.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// IsRequest reports whether the start line was a request line.
func (p *Parser) IsRequest() bool { return p.msg.IsRequest }

// HeaderComplete reports whether the header block has been read.
func (p *Parser) HeaderComplete() bool { return p.headerComplete }

// Complete reports whether the whole message has been read.
func (p *Parser) Complete() bool { return p.complete }

// Error reports whether the parser is in the error state.
func (p *Parser) Error() bool { return p.err != nil }

// Paused reports whether the parser is paused.
func (p *Parser) Paused() bool { return p.paused }

// Message returns the parsed start-line data.
func (p *Parser) Message() Message { return p.msg }

func (p *Parser) StatusCode() int { return p.msg.StatusCode }

func (p *Parser) URL() string { return p.msg.URL }

func (p *Parser) URLPath() string { return p.msg.URLPath }

func (p *Parser) Method() string { return p.msg.Method }

func (p *Parser) Version() string { return p.msg.Version }

// ParamValue returns a decoded query parameter, or "" when absent.
func (p *Parser) ParamValue(name string) string {
	v, _ := p.params.Get(name)
	return v
}

// HeaderValue returns a header value (case-insensitive), or "" when absent.
func (p *Parser) HeaderValue(name string) string {
	v, _ := p.headers.Get(name)
	return v
}

// Location returns the Location header value, or "" when absent.
func (p *Parser) Location() string { return p.HeaderValue("Location") }

// ForEachParam calls visit for every query parameter in insertion order.
func (p *Parser) ForEachParam(visit func(name, value string)) {
	for _, param := range p.params {
		visit(param.Key, param.Value)
	}
}

// ForEachHeader calls visit for every header in insertion order.
func (p *Parser) ForEachHeader(visit func(name, value string)) {
	for _, hdr := range p.headers {
		visit(hdr.Key, hdr.Value)
	}
}

// Headers returns a copy of the parsed headers.
func (p *Parser) Headers() HeaderMap { return p.headers.Clone() }

// Params returns a copy of the decoded query parameters.
func (p *Parser) Params() ParamMap { return p.params.Clone() }

func (p *Parser) parseStartLine(line []byte) *ParseError {
	sl, err := tokenizer.ParseStartLine(line)
	if err != nil {
		return newParseError(ErrMalformedStartLine, fmt.Sprintf("%q: %v", line, err))
	}

	p.msg.Version = sl.Version
	if sl.Response {
		p.msg.StatusCode = sl.StatusCode
		return nil
	}

	p.msg.IsRequest = true
	p.msg.Method = sl.Method
	p.msg.URL = sl.Target

	path, query := urlcodec.Split(sl.Target)
	p.msg.URLPath = urlcodec.DecodePath(path)
	urlcodec.ParseQuery(query, p.params.Set)
	return nil
}

// addHeader stores one header or trailer line. Only headers, not trailers,
// affect body framing.
func (p *Parser) addHeader(line []byte, trailer bool) *ParseError {
	p.headerLines++
	if p.headerLines > p.settings.MaxHeaders {
		return newParseError(ErrMalformedHeader, fmt.Sprintf("more than %d header lines", p.settings.MaxHeaders))
	}

	name, value, err := fastparser.SplitHeaderLine(line)
	if err != nil {
		return newParseError(ErrMalformedHeader, fmt.Sprintf("%q: %v", line, err))
	}

	if !trailer {
		switch {
		case fastparser.EqualFold(name, "content-length"):
			n, err := fastparser.ParseContentLength(value)
			if err != nil {
				return newParseError(ErrInvalidContentLength, fmt.Sprintf("%q: %v", value, err))
			}
			if p.hasContentLength && n != p.contentLength {
				return newParseError(ErrInvalidContentLength, "conflicting values")
			}
			p.hasContentLength = true
			p.contentLength = n
		case fastparser.EqualFold(name, "transfer-encoding"):
			if fastparser.HasToken(value, "chunked") {
				p.chunked = true
			}
		case fastparser.EqualFold(name, "connection"):
			if fastparser.HasToken(value, "upgrade") {
				p.upgrade = true
			}
		}
	}

	p.headers.Set(fastparser.InternHeaderName(name), string(value))
	return nil
}

// selectBody fixes the body framing for the rest of the message.
func (p *Parser) selectBody() {
	if p.chunked {
		p.hasContentLength = false
	}

	switch {
	case p.upgrade:
		p.body = noBody{}
	case p.chunked:
		p.body = newChunked(p.lines)
	case p.hasContentLength:
		p.body = &contentLength{remaining: p.contentLength}
	case p.msg.IsRequest, noBodyStatus(p.msg.StatusCode):
		p.body = noBody{}
	default:
		p.body = untilEOF{}
	}
}

// noBodyStatus reports whether a response status never carries a body.
func noBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == 204 || code == 304
}

func (p *Parser) finish() {
	p.phase = PhaseDone
	p.complete = true
	p.emitEvent(EventComplete)
}

func (p *Parser) fail(err *ParseError) {
	if err.Position == 0 {
		err.Position = p.offset
	}
	p.err = err
	p.log.Debug("parse error", zap.Error(err), zap.Int64("offset", p.offset))
	p.emitEvent(EventError)
}

// emitEvent and emitData report whether the parser is still alive after the
// callback returns. Nothing on p may be touched once they return false.
func (p *Parser) emitEvent(ev Event) bool {
	cb, tok := p.onEvent, p.token
	if cb == nil {
		return true
	}
	cb(ev)
	return !tok.Destroyed()
}

func (p *Parser) emitData(data []byte) bool {
	cb, tok := p.onData, p.token
	if cb == nil {
		return true
	}
	cb(data)
	return !tok.Destroyed()
}
