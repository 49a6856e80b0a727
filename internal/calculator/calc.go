// Package calculator provides basic arithmetic operations and the named
// Calculator value used by the calc command.
package calculator

import (
	"fmt"
	"io"
)

// Add returns the sum of a and b.
func Add(a, b int) int {
	return a + b
}

// Subtract returns a minus b.
func Subtract(a, b int) int {
	return a - b
}

// Multiply returns a times b.
func Multiply(a, b int) int {
	return a * b
}

// Calculator pairs a display name with the arithmetic operations.
// The name is set at construction and never changes.
type Calculator struct {
	name string
}

// New returns a Calculator with the given display name.
func New(name string) Calculator {
	return Calculator{name: name}
}

// Name returns the display name.
func (c Calculator) Name() string {
	return c.name
}

// DisplayName writes "Calculator: <name>" and a newline to w.
func (c Calculator) DisplayName(w io.Writer) {
	fmt.Fprintf(w, "Calculator: %s\n", c.name)
}

// Add returns the sum of a and b.
func (c Calculator) Add(a, b int) int {
	return Add(a, b)
}

// Multiply returns a times b.
func (c Calculator) Multiply(a, b int) int {
	return Multiply(a, b)
}
