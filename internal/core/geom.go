// Package core provides fundamental types and utilities for the platformer.
// It contains no external dependencies to keep the simulation model pure
// and testable.
package core

import (
	"fmt"
	"math"
)

// Vector is an immutable 2D point or displacement.
// Operations always return a new Vector and never modify their operands.
type Vector struct {
	X, Y float64
}

// V creates a new vector.
func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vector { return Vector{} }

// Plus returns the component-wise sum of two vectors.
func (v Vector) Plus(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Times returns the vector scaled by factor.
func (v Vector) Times(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Valid reports whether both components are finite numbers.
// A vector with a NaN or infinite component is rejected by constructors
// and queries with ErrType or ErrInvalidArgument.
func (v Vector) Valid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	Pos  Vector // Top-left corner position
	Size Vector // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(pos, size Vector) Rect {
	return Rect{Pos: pos, Size: size}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.Pos.X
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Pos.Y
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Pos.X + r.Size.X
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Pos.Y + r.Size.Y
}

// Intersects returns true if this rectangle overlaps with another.
// Edges are half-open: rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if other.Bottom() <= r.Top() || other.Left() >= r.Right() {
		return false
	}
	if other.Top() >= r.Bottom() || other.Right() <= r.Left() {
		return false
	}
	return true
}

// CellSpan returns the integer grid cells covered by the rectangle.
// Columns run over [left, right) and rows over [top, bottom). Coordinates
// beyond the int range saturate.
func (r Rect) CellSpan() (left, top, right, bottom int) {
	left = toInt(math.Floor(r.Left()))
	right = toInt(math.Ceil(r.Right()))
	top = toInt(math.Floor(r.Top()))
	bottom = toInt(math.Ceil(r.Bottom()))
	return left, top, right, bottom
}

func toInt(f float64) int {
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	case math.IsNaN(f):
		return 0
	}
	return int(f)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
