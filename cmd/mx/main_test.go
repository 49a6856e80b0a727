package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

const exitSuccess = 0

func TestCalcFixture(t *testing.T) {
	out, code := captureStdout(func() int {
		return run([]string{"calc"})
	})
	if code != exitSuccess {
		t.Fatalf("expected calc exit %d, got %d", exitSuccess, code)
	}

	want := "Calculator: MyCalc\n5 + 3 = 8\n5 * 3 = 15\n"
	if out != want {
		t.Fatalf("calc output = %q, want %q", out, want)
	}
}

func TestCalcCustomName(t *testing.T) {
	out, code := captureStdout(func() int {
		return run([]string{"calc", "--name", "Office", "-a", "7", "-b", "6"})
	})
	if code != exitSuccess {
		t.Fatalf("expected calc exit %d, got %d", exitSuccess, code)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "Calculator: Office" {
		t.Errorf("line 1 = %q, want %q", lines[0], "Calculator: Office")
	}
	if lines[1] != "7 + 6 = 13" {
		t.Errorf("line 2 = %q, want %q", lines[1], "7 + 6 = 13")
	}
	if lines[2] != "7 * 6 = 42" {
		t.Errorf("line 3 = %q, want %q", lines[2], "7 * 6 = 42")
	}
}

func TestMathutilFixture(t *testing.T) {
	out, code := captureStdout(func() int {
		return run([]string{"mathutil"})
	})
	if code != exitSuccess {
		t.Fatalf("expected mathutil exit %d, got %d", exitSuccess, code)
	}

	want := "Sum: 15\nDifference: 5\nPoint(3, 4)\n"
	if out != want {
		t.Fatalf("mathutil output = %q, want %q", out, want)
	}
}

func TestMathutilBadPoint(t *testing.T) {
	_, code := captureStdout(func() int {
		return run([]string{"mathutil", "--point", "nope"})
	})
	if code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}
}

func TestEval(t *testing.T) {
	out, code := captureStdout(func() int {
		return run([]string{"eval", "5 + 3", "10 - 5"})
	})
	if code != exitSuccess {
		t.Fatalf("expected eval exit %d, got %d", exitSuccess, code)
	}

	want := "5 + 3 = 8\n10 - 5 = 5\n"
	if out != want {
		t.Fatalf("eval output = %q, want %q", out, want)
	}
}

func TestEvalJSON(t *testing.T) {
	out, code := captureStdout(func() int {
		return run([]string{"eval", "--json", "5 * 3"})
	})
	if code != exitSuccess {
		t.Fatalf("expected eval exit %d, got %d", exitSuccess, code)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parse eval json: %v", err)
	}
	if result["expr"] != "5 * 3" {
		t.Errorf("expr = %v, want %q", result["expr"], "5 * 3")
	}
	if result["value"] != float64(15) {
		t.Errorf("value = %v, want 15", result["value"])
	}
}

func TestEvalBadExpression(t *testing.T) {
	_, code := captureStdout(func() int {
		return run([]string{"eval", "5 / 3"})
	})
	if code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}
}

func captureStdout(fn func() int) (string, int) {
	orig := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	code := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	_ = r.Close()

	return buf.String(), code
}
