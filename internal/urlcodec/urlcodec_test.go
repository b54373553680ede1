package urlcodec

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		raw, path, query string
	}{
		{"/a?x=1&y=2", "/a", "x=1&y=2"},
		{"/a", "/a", ""},
		{"/a?", "/a", ""},
		{"/a?b?c", "/a", "b?c"},
		{"*", "*", ""},
	}
	for _, tt := range tests {
		path, query := Split(tt.raw)
		if path != tt.path || query != tt.query {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.raw, path, query, tt.path, tt.query)
		}
	}
}

func TestDecodePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/plain", "/plain"},
		{"/a%20b", "/a b"},
		{"/a+b", "/a+b"},
		{"/%E4%BD%A0", "/\xe4\xbd\xa0"},
		{"/%2f", "//"},
		{"/bad%zz", "/bad%zz"},
		{"/trunc%4", "/trunc%4"},
		{"/trunc%", "/trunc%"},
		{"%41%42", "AB"},
	}
	for _, tt := range tests {
		if got := DecodePath(tt.in); got != tt.want {
			t.Errorf("DecodePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeQueryComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello+world", "hello world"},
		{"a%2Bb", "a+b"},
		{"100%", "100%"},
		{"%g1", "%g1"},
	}
	for _, tt := range tests {
		if got := DecodeQueryComponent(tt.in); got != tt.want {
			t.Errorf("DecodeQueryComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseQuery(t *testing.T) {
	type pair struct{ name, value string }

	tests := []struct {
		query string
		want  []pair
	}{
		{"x=1&y=2", []pair{{"x", "1"}, {"y", "2"}}},
		{"flag", []pair{{"flag", ""}}},
		{"a=1&&b=", []pair{{"a", "1"}, {"b", ""}}},
		{"q=a+b&n%20m=v%3D1", []pair{{"q", "a b"}, {"n m", "v=1"}}},
		{"k=v=w", []pair{{"k", "v=w"}}},
		{"", nil},
	}

	for _, tt := range tests {
		var got []pair
		ParseQuery(tt.query, func(name, value string) {
			got = append(got, pair{name, value})
		})
		if len(got) != len(tt.want) {
			t.Errorf("ParseQuery(%q) = %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseQuery(%q)[%d] = %v, want %v", tt.query, i, got[i], tt.want[i])
			}
		}
	}
}
