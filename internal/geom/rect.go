// Package geom provides the axis-aligned rectangle primitive the packing
// engine is built on. All coordinates are exact decimals so that repeated
// runs over the same input produce bit-identical layouts and so that
// touching edges never read as overlapping due to float noise.
package geom

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rect is an axis-aligned rectangle with side length A along the x axis,
// side length B along the y axis and its bottom-left corner at (X, Y).
//
// Angle is a display hint in degrees for renderers drawing rotated slot
// outlines. The geometric predicates below ignore it entirely and always
// treat the rectangle as axis-aligned.
type Rect struct {
	A, B  decimal.Decimal
	X, Y  decimal.Decimal
	Angle int
}

// New returns a rectangle of size a x b with its bottom-left corner at (x, y).
func New(a, b, x, y decimal.Decimal) Rect {
	return Rect{A: a, B: b, X: x, Y: y}
}

// NewSized returns a rectangle of size a x b positioned at the origin.
func NewSized(a, b decimal.Decimal) Rect {
	return Rect{A: a, B: b}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() decimal.Decimal { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() decimal.Decimal { return r.X.Add(r.A) }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() decimal.Decimal { return r.Y }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() decimal.Decimal { return r.Y.Add(r.B) }

// Center returns the coordinates of the rectangle's midpoint.
func (r Rect) Center() (decimal.Decimal, decimal.Decimal) {
	two := decimal.NewFromInt(2)
	return r.X.Add(r.A.Div(two)), r.Y.Add(r.B.Div(two))
}

// Area returns the surface area A*B.
func (r Rect) Area() decimal.Decimal { return r.A.Mul(r.B) }

// Empty reports whether the rectangle has no extent in at least one axis.
func (r Rect) Empty() bool {
	return !r.A.IsPositive() || !r.B.IsPositive()
}

// MovedTo returns a copy of r with its bottom-left corner at (x, y).
func (r Rect) MovedTo(x, y decimal.Decimal) Rect {
	r.X = x
	r.Y = y
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("rect %s x %s at (%s, %s)", r.A, r.B, r.X, r.Y)
}

// FitsInto reports whether r1 is small enough to be placed inside r2,
// ignoring positions. Equal side lengths count as fitting.
func FitsInto(r1, r2 Rect) bool {
	return r1.A.LessThanOrEqual(r2.A) && r1.B.LessThanOrEqual(r2.B)
}

// XIntersect reports whether the x-axis projections of r1 and r2 overlap
// with positive length. Rectangles that merely share an edge do not count.
func XIntersect(r1, r2 Rect) bool {
	return r1.Left().LessThan(r2.Right()) && r1.Right().GreaterThan(r2.Left())
}

// YIntersect reports whether the y-axis projections of r1 and r2 overlap
// with positive length.
func YIntersect(r1, r2 Rect) bool {
	return r1.Bottom().LessThan(r2.Top()) && r1.Top().GreaterThan(r2.Bottom())
}

// Intersect reports whether r1 and r2 overlap with positive area. Touching
// edges or corners do not count as an intersection, so items may be packed
// flush against each other.
func Intersect(r1, r2 Rect) bool {
	return XIntersect(r1, r2) && YIntersect(r1, r2)
}

// Contains reports whether r2 lies entirely within r1. The comparison is
// boundary-inclusive: a rectangle contains itself.
func Contains(r1, r2 Rect) bool {
	return r2.Left().GreaterThanOrEqual(r1.Left()) &&
		r2.Right().LessThanOrEqual(r1.Right()) &&
		r2.Bottom().GreaterThanOrEqual(r1.Bottom()) &&
		r2.Top().LessThanOrEqual(r1.Top())
}

// ContainsPoint reports whether the point (x, y) lies within r, boundary
// included.
func ContainsPoint(r Rect, x, y decimal.Decimal) bool {
	return x.GreaterThanOrEqual(r.Left()) && x.LessThanOrEqual(r.Right()) &&
		y.GreaterThanOrEqual(r.Bottom()) && y.LessThanOrEqual(r.Top())
}
