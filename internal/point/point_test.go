package point

import (
	"bytes"
	"testing"
)

func TestString(t *testing.T) {
	cases := []struct {
		name     string
		x, y     int
		expected string
	}{
		{"fixture point", 3, 4, "Point(3, 4)"},
		{"origin", 0, 0, "Point(0, 0)"},
		{"negative coordinates", -2, 7, "Point(-2, 7)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(tc.x, tc.y)
			if got := p.String(); got != tc.expected {
				t.Errorf("New(%d, %d).String() = %q, want %q", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestFprint(t *testing.T) {
	p := New(3, 4)

	var buf bytes.Buffer
	p.Fprint(&buf)
	if buf.String() != "Point(3, 4)\n" {
		t.Errorf("Fprint wrote %q, want %q", buf.String(), "Point(3, 4)\n")
	}
}

func TestFprintIdempotent(t *testing.T) {
	p := New(3, 4)

	var first, second bytes.Buffer
	p.Fprint(&first)
	p.Fprint(&second)
	if first.String() != second.String() {
		t.Errorf("repeated Fprint differs: %q vs %q", first.String(), second.String())
	}
}
