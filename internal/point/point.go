// Package point provides an immutable 2D integer coordinate value.
package point

import (
	"fmt"
	"io"
)

// Point is a pair of integer coordinates. It is a plain value: copies are
// independent and there is no lifecycle to manage.
type Point struct {
	X, Y int
}

// New returns a Point with the given coordinates.
func New(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns the point formatted as "Point(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("Point(%d, %d)", p.X, p.Y)
}

// Fprint writes the point and a newline to w.
func (p Point) Fprint(w io.Writer) {
	fmt.Fprintln(w, p.String())
}
