package utils

import "testing"

func TestParseInputString(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"hello", "hello"},
		{"  hello  world  ", "hello world"},
		{"a\t b\n c", "a b c"},
	} {
		if got := ParseInputString(tc.in); got != tc.want {
			t.Fatalf("ParseInputString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
