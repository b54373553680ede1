package httpparser

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestDecoder_Pipelined(t *testing.T) {
	stream := "GET /one HTTP/1.1\r\nHost: h\r\n\r\n" +
		"POST /two?k=v HTTP/1.1\r\nContent-Length: 4\r\n\r\nbody" +
		"PUT /three HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n3\r\nabc\r\n0\r\n\r\n"

	readers := map[string]io.Reader{
		"whole":    strings.NewReader(stream),
		"one byte": iotest.OneByteReader(strings.NewReader(stream)),
		"half":     iotest.HalfReader(strings.NewReader(stream)),
	}
	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			dec := NewDecoder(r, Settings{})

			want := []struct {
				path string
				body string
			}{
				{"/one", ""},
				{"/two", "body"},
				{"/three", "abc"},
			}
			for i, w := range want {
				res, err := dec.Next()
				if err != nil {
					t.Fatalf("message %d: Next() error = %v", i, err)
				}
				if res.Message.URLPath != w.path {
					t.Errorf("message %d: path = %q, want %q", i, res.Message.URLPath, w.path)
				}
				if string(res.Body) != w.body {
					t.Errorf("message %d: body = %q, want %q", i, res.Body, w.body)
				}
			}

			if _, err := dec.Next(); err != io.EOF {
				t.Errorf("Next() at end = %v, want io.EOF", err)
			}
		})
	}
}

func TestDecoder_ResultsDoNotShareState(t *testing.T) {
	dec := NewDecoder(strings.NewReader(
		"GET /a?x=1 HTTP/1.1\r\nX-A: 1\r\n\r\nGET /b HTTP/1.1\r\nX-B: 2\r\n\r\n"), Settings{})

	first, err := dec.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	second, err := dec.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if v, _ := first.Headers.Get("X-A"); v != "1" {
		t.Errorf("first X-A = %q, want 1", v)
	}
	if _, ok := first.Headers.Get("X-B"); ok {
		t.Error("first message sees X-B")
	}
	if _, ok := second.Headers.Get("X-A"); ok {
		t.Error("second message sees X-A")
	}
	if v, _ := first.Params.Get("x"); v != "1" {
		t.Errorf("first x = %q, want 1", v)
	}
	if second.Params.Len() != 0 {
		t.Errorf("second params = %v, want none", second.Params)
	}
}

func TestDecoder_UntilEOF(t *testing.T) {
	dec := NewDecoder(strings.NewReader("HTTP/1.0 200 OK\r\n\r\nall of it"), Settings{})

	res, err := dec.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if res.Message.StatusCode != 200 || string(res.Body) != "all of it" {
		t.Errorf("result = %d %q", res.Message.StatusCode, res.Body)
	}
	if _, err := dec.Next(); err != io.EOF {
		t.Errorf("Next() at end = %v, want io.EOF", err)
	}
}

func TestDecoder_Truncated(t *testing.T) {
	dec := NewDecoder(strings.NewReader("POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\nshort"), Settings{})

	_, err := dec.Next()
	if !errors.Is(err, ErrPrematureEOF) {
		t.Errorf("Next() error = %v, want %v", err, ErrPrematureEOF)
	}
}

func TestDecoder_Malformed(t *testing.T) {
	dec := NewDecoder(strings.NewReader("NOT HTTP\r\n\r\n"), Settings{})

	_, err := dec.Next()
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ErrMalformedStartLine {
		t.Errorf("Next() error = %v, want %v", err, ErrMalformedStartLine)
	}
}

func TestDecoder_Empty(t *testing.T) {
	for _, in := range []string{"", "\r\n\r\n"} {
		dec := NewDecoder(strings.NewReader(in), Settings{})
		if _, err := dec.Next(); err != io.EOF {
			t.Errorf("Next() on %q = %v, want io.EOF", in, err)
		}
	}
}

func TestDecoder_ReadError(t *testing.T) {
	boom := errors.New("boom")
	dec := NewDecoder(iotest.ErrReader(boom), Settings{})

	if _, err := dec.Next(); !errors.Is(err, boom) {
		t.Errorf("Next() error = %v, want %v", err, boom)
	}
}

func TestResult_Node(t *testing.T) {
	dec := NewDecoder(strings.NewReader("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nhi"), Settings{})
	res, err := dec.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	props := res.Node().(*ast.ObjectNode).Properties()
	if literalString(props, "body") != "hi" {
		t.Errorf("body = %q, want hi", literalString(props, "body"))
	}
}
