package httpparser

import "fmt"

// ErrorKind classifies a parse failure. It is comparable and can be matched
// with errors.Is against a *ParseError.
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	ErrMalformedStartLine   ErrorKind = "malformed start line"
	ErrMalformedHeader      ErrorKind = "malformed header"
	ErrInvalidContentLength ErrorKind = "invalid content length"
	ErrInvalidChunkSize     ErrorKind = "invalid chunk size"
	ErrPrematureEOF         ErrorKind = "premature end of stream"
	ErrLineTooLong          ErrorKind = "line too long"

	// ErrPostCompletionInput is reported by Feed for input supplied after a
	// message completed. It does not put the parser into the error state.
	ErrPostCompletionInput ErrorKind = "input after message completion"
)

// ParseError represents an error that occurred during HTTP message parsing.
type ParseError struct {
	Kind     ErrorKind
	Message  string // human-readable detail
	Position int64  // byte offset within the message (0 if unknown)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Position > 0 {
		return fmt.Sprintf("http: parse error at position %d: %s", e.Position, msg)
	}
	return fmt.Sprintf("http: %s", msg)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

func newParseError(kind ErrorKind, msg string) *ParseError {
	return &ParseError{Kind: kind, Message: msg}
}

func wrapParseError(kind ErrorKind, err error) *ParseError {
	return &ParseError{Kind: kind, Message: err.Error()}
}
