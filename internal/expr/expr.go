// Package expr parses and evaluates simple binary integer expressions
// of the form "a <op> b" where op is +, - or *.
package expr

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pengelbrecht/mathx/internal/calculator"
)

// Op identifies an arithmetic operator.
type Op byte

const (
	OpAdd      Op = '+'
	OpSubtract Op = '-'
	OpMultiply Op = '*'
)

// Expr is a parsed binary expression.
type Expr struct {
	A  int
	Op Op
	B  int
}

// String returns the expression in its canonical "a op b" form.
func (e Expr) String() string {
	return fmt.Sprintf("%d %c %d", e.A, e.Op, e.B)
}

// Eval computes the expression value.
func (e Expr) Eval() int {
	switch e.Op {
	case OpAdd:
		return calculator.Add(e.A, e.B)
	case OpSubtract:
		return calculator.Subtract(e.A, e.B)
	case OpMultiply:
		return calculator.Multiply(e.A, e.B)
	}
	// Parse never produces another op.
	return 0
}

// Parse parses a single expression line like "5 + 3".
// The operator must be separated from the operands by whitespace.
func Parse(line string) (Expr, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Expr{}, fmt.Errorf("expected \"a op b\", got %q", strings.TrimSpace(line))
	}

	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return Expr{}, fmt.Errorf("invalid operand %q", fields[0])
	}

	op, err := parseOp(fields[1])
	if err != nil {
		return Expr{}, err
	}

	b, err := strconv.Atoi(fields[2])
	if err != nil {
		return Expr{}, fmt.Errorf("invalid operand %q", fields[2])
	}

	return Expr{A: a, Op: op, B: b}, nil
}

func parseOp(s string) (Op, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSubtract, nil
	case "*":
		return OpMultiply, nil
	default:
		return 0, fmt.Errorf("unsupported operator %q", s)
	}
}

// ParseReader reads expressions from r, one per line. Blank lines and lines
// starting with # are skipped. A parse error stops the read and reports the
// offending line number.
func ParseReader(r io.Reader) ([]Expr, error) {
	var exprs []Expr
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		exprs = append(exprs, e)
	}
	return exprs, scanner.Err()
}
