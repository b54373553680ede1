package linescan

import (
	"errors"
	"testing"
)

func TestNext_SingleFragment(t *testing.T) {
	s := New(0)
	data := []byte("Host: example.com\r\nrest")

	line, n, ok, err := s.Next(data)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if !ok {
		t.Fatal("Next() ok = false, want true")
	}
	if string(line) != "Host: example.com" {
		t.Errorf("line = %q, want %q", line, "Host: example.com")
	}
	if n != 19 {
		t.Errorf("n = %d, want 19", n)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestNext_InPlaceView(t *testing.T) {
	s := New(0)
	data := []byte("abc\r\n")

	line, _, _, _ := s.Next(data)
	if &line[0] != &data[0] {
		t.Error("single-fragment line was copied, want a view into the input")
	}
}

func TestNext_BareLF(t *testing.T) {
	s := New(0)
	line, n, ok, err := s.Next([]byte("GET / HTTP/1.1\nHost: x\n"))
	if err != nil || !ok {
		t.Fatalf("Next() ok = %v, err = %v", ok, err)
	}
	if string(line) != "GET / HTTP/1.1" {
		t.Errorf("line = %q, want %q", line, "GET / HTTP/1.1")
	}
	if n != 15 {
		t.Errorf("n = %d, want 15", n)
	}
}

func TestNext_SpansFragments(t *testing.T) {
	s := New(0)

	_, n, ok, err := s.Next([]byte("Content-"))
	if err != nil || ok {
		t.Fatalf("first Next() ok = %v, err = %v", ok, err)
	}
	if n != 8 {
		t.Errorf("n = %d, want 8", n)
	}
	if s.Pending() != 8 {
		t.Errorf("Pending() = %d, want 8", s.Pending())
	}

	line, n, ok, err := s.Next([]byte("Length: 5\r\nbody"))
	if err != nil || !ok {
		t.Fatalf("second Next() ok = %v, err = %v", ok, err)
	}
	if string(line) != "Content-Length: 5" {
		t.Errorf("line = %q, want %q", line, "Content-Length: 5")
	}
	if n != 11 {
		t.Errorf("n = %d, want 11", n)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestNext_CRLFSplitAcrossFragments(t *testing.T) {
	s := New(0)

	if _, _, ok, _ := s.Next([]byte("Host: a\r")); ok {
		t.Fatal("line reported complete before LF arrived")
	}

	line, n, ok, err := s.Next([]byte("\nX"))
	if err != nil || !ok {
		t.Fatalf("Next() ok = %v, err = %v", ok, err)
	}
	if string(line) != "Host: a" {
		t.Errorf("line = %q, want %q", line, "Host: a")
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestNext_EmptyLine(t *testing.T) {
	s := New(0)
	line, n, ok, err := s.Next([]byte("\r\n"))
	if err != nil || !ok {
		t.Fatalf("Next() ok = %v, err = %v", ok, err)
	}
	if len(line) != 0 {
		t.Errorf("line = %q, want empty", line)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestNext_ByteAtATime(t *testing.T) {
	s := New(0)
	input := []byte("a: 1\r\nbb: 2\n\r\n")
	want := []string{"a: 1", "bb: 2", ""}

	var got []string
	for i := range input {
		line, n, ok, err := s.Next(input[i : i+1])
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if n != 1 {
			t.Fatalf("n = %d, want 1", n)
		}
		if ok {
			got = append(got, string(line))
		}
	}

	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNext_LineTooLong(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
	}{
		{"pending overflow", []string{"0123456789", "0123456789"}},
		{"single fragment", []string{"012345678901\r\n"}},
		{"completed across fragments", []string{"01234567", "8901\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(10)
			var err error
			for _, c := range tt.chunks {
				if _, _, _, err = s.Next([]byte(c)); err != nil {
					break
				}
			}
			if !errors.Is(err, ErrLineTooLong) {
				t.Errorf("err = %v, want ErrLineTooLong", err)
			}
		})
	}
}

func TestNext_LimitAllowsExactLength(t *testing.T) {
	s := New(4)
	line, _, ok, err := s.Next([]byte("abcd\r\n"))
	if err != nil || !ok {
		t.Fatalf("Next() ok = %v, err = %v", ok, err)
	}
	if string(line) != "abcd" {
		t.Errorf("line = %q, want abcd", line)
	}
}

func TestReset(t *testing.T) {
	s := New(0)
	s.Next([]byte("partial"))
	s.Reset()
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after Reset", s.Pending())
	}

	line, _, ok, _ := s.Next([]byte("next\r\n"))
	if !ok || string(line) != "next" {
		t.Errorf("line = %q, ok = %v; want next, true", line, ok)
	}
}
