package httpparser

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"go.uber.org/zap"
)

const decoderBufferSize = 4096

// Result is one complete message read by a Decoder.
type Result struct {
	Message Message
	Headers HeaderMap
	Params  ParamMap
	Body    []byte
}

// Node renders the result, body included, into a shape-core AST.
func (r *Result) Node() ast.SchemaNode {
	return messageToNode(r.Message, r.Headers, r.Params, r.Body)
}

// Decoder reads consecutive HTTP messages from a stream by feeding a Parser.
// Bytes read past the end of one message are kept for the next, so pipelined
// messages are decoded in order.
// A single Decoder is not safe for concurrent use.
type Decoder struct {
	r   io.Reader
	p   *Parser
	log *zap.Logger

	buf     []byte
	pending []byte
	body    []byte
	eof     bool
}

// NewDecoder returns a decoder that reads from r.
func NewDecoder(r io.Reader, settings Settings) *Decoder {
	settings = prepareSettings(settings)

	dec := &Decoder{
		r:   r,
		p:   New(settings),
		log: settings.Logger.Named("decoder"),
		buf: make([]byte, decoderBufferSize),
	}
	dec.p.SetDataCallback(func(b []byte) {
		dec.body = append(dec.body, b...)
	})
	return dec
}

// Next reads the next complete message. It returns io.EOF when the stream
// ends cleanly between messages and a *ParseError when the input is
// malformed or ends inside a message.
func (dec *Decoder) Next() (*Result, error) {
	dec.p.Reset()
	dec.body = nil

	for {
		if len(dec.pending) > 0 {
			n := dec.p.Parse(dec.pending)
			dec.pending = dec.pending[n:]

			if err := dec.p.Err(); err != nil {
				return nil, err
			}
			if dec.p.Complete() {
				if len(dec.pending) > 0 {
					dec.log.Debug("pipelined bytes kept for next message", zap.Int("bytes", len(dec.pending)))
				}
				return dec.result(), nil
			}
			continue
		}

		if dec.eof {
			if dec.p.Phase() == PhaseIdle {
				return nil, io.EOF
			}
			if dec.p.SetEOF() {
				return dec.result(), nil
			}
			return nil, dec.p.Err()
		}

		n, err := dec.r.Read(dec.buf)
		if n > 0 {
			dec.pending = dec.buf[:n]
		}
		if err == io.EOF {
			dec.eof = true
		} else if err != nil {
			dec.log.Debug("read failed", zap.Error(err))
			return nil, fmt.Errorf("http: decode: %w", err)
		}
	}
}

func (dec *Decoder) result() *Result {
	return &Result{
		Message: dec.p.Message(),
		Headers: dec.p.Headers(),
		Params:  dec.p.Params(),
		Body:    dec.body,
	}
}
