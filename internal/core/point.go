package core

import (
	"fmt"
	"math"
)

// Point is a position on the board. By convention X is the row index and
// Y is the column index (Design Notes §9c) — never the other way around.
type Point struct {
	X, Y int
}

func NewPoint(x, y int) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Wrap normalizes a point into [0,rows) x [0,cols) using the non-negative
// modulus, so boards are toroidal: there is no edge.
func Wrap(p Point, rows, cols int) Point {
	return Point{X: mod(p.X, rows), Y: mod(p.Y, cols)}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// shortestDelta replaces a raw axis delta with its shorter wrap-around
// equivalent: if the direct distance exceeds half the axis size, the
// other way around the torus is shorter.
func shortestDelta(d, size int) int {
	if d > size/2 {
		return d - size
	}
	if d < -size/2 {
		return d + size
	}
	return d
}

// ToroidalDistance computes the Euclidean distance between a and b on a
// rows x cols toroidal board, using the shorter wrap-around delta on each
// axis (spec.md §4.1).
func ToroidalDistance(a, b Point, rows, cols int) float64 {
	dx := float64(shortestDelta(a.X-b.X, rows))
	dy := float64(shortestDelta(a.Y-b.Y, cols))
	return math.Sqrt(dx*dx + dy*dy)
}
