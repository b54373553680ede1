package tokenizer

import (
	"bytes"
	"errors"

	"github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/shape-httpparser/internal/fastparser"
)

// Start line errors.
var (
	ErrEmptyLine  = errors.New("empty start line")
	ErrTokenCount = errors.New("start line is not three space-separated parts")
	ErrVersion    = errors.New("unrecognized HTTP version")
	ErrStatusCode = errors.New("status code is not three digits")
)

// StartLine is a classified request-line or status-line.
type StartLine struct {
	Response   bool
	Method     string
	Target     string
	Version    string
	StatusCode int
}

// NewTokenizer creates a tokenizer for a single start line (terminator
// already stripped). Matchers, in priority order:
// 1. SP (the only separator)
// 2. HTTP version, strictly "HTTP/" DIGIT "." DIGIT
// 3. Word (everything up to the next SP)
//
// The default whitespace skipper is not used because spaces are the
// structure of the line.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		SPMatcher(),
		VersionMatcher(),
		WordMatcher(),
	)
}

// SPMatcher matches a single space character.
func SPMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != ' ' {
			return nil
		}
		stream.NextChar()
		return tokenizer.NewToken(TokenSP, []rune{' '})
	}
}

// VersionMatcher matches "HTTP/" DIGIT "." DIGIT when it is followed by a
// space or the end of the line. Anything else ("HTTP/2", "HTTP/1.1x") is
// left to WordMatcher.
func VersionMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for _, expected := range "HTTP/" {
			r, ok := stream.PeekChar()
			if !ok || r != expected {
				return nil
			}
			stream.NextChar()
			value = append(value, r)
		}

		for _, class := range []func(rune) bool{isDigit, isDot, isDigit} {
			r, ok := stream.PeekChar()
			if !ok || !class(r) {
				return nil
			}
			stream.NextChar()
			value = append(value, r)
		}

		if r, ok := stream.PeekChar(); ok && r != ' ' {
			return nil
		}

		return tokenizer.NewToken(TokenVersion, value)
	}
}

// WordMatcher matches any run of characters up to the next space.
func WordMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for {
			r, ok := stream.PeekChar()
			if !ok || r == ' ' {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}

		return tokenizer.NewToken(TokenWord, value)
	}
}

// ParseStartLine classifies line as a status-line when its first token is an
// HTTP version and as a request-line otherwise.
//
// Token kinds decide the structure; field values are sliced from line itself
// so that bytes outside UTF-8 in a request-target survive untouched.
func ParseStartLine(line []byte) (StartLine, error) {
	if len(line) == 0 {
		return StartLine{}, ErrEmptyLine
	}

	tok := NewTokenizer()
	tok.Initialize(string(line))
	tokens, eos := tok.Tokenize()
	if !eos || len(tokens) == 0 {
		return StartLine{}, ErrTokenCount
	}

	kinds := make([]string, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind()
	}
	fields := bytes.SplitN(line, []byte{' '}, 3)

	if kinds[0] == TokenVersion {
		return parseStatusLine(kinds, fields)
	}
	return parseRequestLine(kinds, fields)
}

// parseRequestLine expects exactly: token SP token SP Version.
func parseRequestLine(kinds []string, fields [][]byte) (StartLine, error) {
	if len(kinds) != 5 || kinds[1] != TokenSP || kinds[3] != TokenSP ||
		kinds[0] == TokenSP || kinds[2] == TokenSP || kinds[4] == TokenSP {
		return StartLine{}, ErrTokenCount
	}
	if kinds[4] != TokenVersion {
		return StartLine{}, ErrVersion
	}

	return StartLine{
		Method:  fastparser.InternMethod(fields[0]),
		Target:  string(fields[1]),
		Version: fastparser.InternVersion(fields[2]),
	}, nil
}

// parseStatusLine expects: Version SP Word [SP reason...]. The reason phrase
// may contain spaces and is ignored.
func parseStatusLine(kinds []string, fields [][]byte) (StartLine, error) {
	if len(kinds) < 3 || kinds[1] != TokenSP || kinds[2] == TokenSP {
		return StartLine{}, ErrTokenCount
	}
	if len(kinds) > 3 && kinds[3] != TokenSP {
		return StartLine{}, ErrTokenCount
	}

	code, ok := fastparser.ParseStatusCode(fields[1])
	if !ok {
		return StartLine{}, ErrStatusCode
	}

	return StartLine{
		Response:   true,
		Version:    fastparser.InternVersion(fields[0]),
		StatusCode: code,
	}, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isDot(r rune) bool { return r == '.' }
