package expr

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		expected Expr
	}{
		{"addition", "5 + 3", Expr{5, OpAdd, 3}},
		{"subtraction", "10 - 5", Expr{10, OpSubtract, 5}},
		{"multiplication", "5 * 3", Expr{5, OpMultiply, 3}},
		{"negative operands", "-2 + -3", Expr{-2, OpAdd, -3}},
		{"extra whitespace", "  7   *  6 ", Expr{7, OpMultiply, 6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.line)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.line, err)
			}
			if got != tc.expected {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.line, got, tc.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"missing operand", "5 +"},
		{"too many tokens", "5 + 3 + 2"},
		{"bad operator", "5 / 3"},
		{"bad left operand", "x + 3"},
		{"bad right operand", "5 + y"},
		{"no spaces", "5+3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.line); err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tc.line)
			}
		})
	}
}

func TestEval(t *testing.T) {
	cases := []struct {
		name     string
		expr     Expr
		expected int
	}{
		{"add fixture", Expr{5, OpAdd, 3}, 8},
		{"multiply fixture", Expr{5, OpMultiply, 3}, 15},
		{"subtract fixture", Expr{10, OpSubtract, 5}, 5},
		{"sum fixture", Expr{10, OpAdd, 5}, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.expr.Eval(); got != tc.expected {
				t.Errorf("%s = %d, want %d", tc.expr, got, tc.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	e := Expr{5, OpAdd, 3}
	if got := e.String(); got != "5 + 3" {
		t.Errorf("String() = %q, want %q", got, "5 + 3")
	}
}

func TestParseReader(t *testing.T) {
	input := `# worksheet
5 + 3

10 - 5
5 * 3
`
	exprs, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}
	if len(exprs) != 3 {
		t.Fatalf("expected 3 expressions, got %d", len(exprs))
	}
	want := []int{8, 5, 15}
	for i, e := range exprs {
		if got := e.Eval(); got != want[i] {
			t.Errorf("expr %d (%s) = %d, want %d", i, e, got, want[i])
		}
	}
}

func TestParseReaderReportsLine(t *testing.T) {
	input := "5 + 3\nbogus line\n"
	_, err := ParseReader(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for bogus line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error to name line 2, got %q", err.Error())
	}
}
