package geom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRectEdges(t *testing.T) {
	r := New(d("4"), d("3"), d("1"), d("2"))

	assert.True(t, r.Left().Equal(d("1")), "left edge should be x")
	assert.True(t, r.Right().Equal(d("5")), "right edge should be x+a")
	assert.True(t, r.Bottom().Equal(d("2")), "bottom edge should be y")
	assert.True(t, r.Top().Equal(d("5")), "top edge should be y+b")
	assert.True(t, r.Area().Equal(d("12")), "area should be a*b")
}

func TestRectCenter(t *testing.T) {
	cx, cy := New(d("4"), d("3"), d("1"), d("2")).Center()
	assert.True(t, cx.Equal(d("3")), "center x should be x+a/2")
	assert.True(t, cy.Equal(d("3.5")), "center y should be y+b/2")
}

func TestRectEdgesExactDecimals(t *testing.T) {
	// 0.1 + 0.2 style values must come out exact, not 0.30000000000000004.
	r := New(d("0.2"), d("0.2"), d("0.1"), d("0.1"))
	assert.True(t, r.Right().Equal(d("0.3")), "decimal arithmetic should be exact")
	assert.True(t, r.Top().Equal(d("0.3")), "decimal arithmetic should be exact")
}

func TestMovedTo(t *testing.T) {
	r := NewSized(d("2"), d("2"))
	moved := r.MovedTo(d("7"), d("8"))

	assert.True(t, moved.X.Equal(d("7")), "x should be updated")
	assert.True(t, moved.Y.Equal(d("8")), "y should be updated")
	assert.True(t, r.X.IsZero(), "original rect should be unchanged")
}

func TestFitsInto(t *testing.T) {
	small := NewSized(d("2"), d("3"))
	big := NewSized(d("4"), d("5"))
	equal := NewSized(d("2"), d("3"))

	assert.True(t, FitsInto(small, big), "smaller rect should fit")
	assert.False(t, FitsInto(big, small), "bigger rect should not fit")
	assert.True(t, FitsInto(small, equal), "equal dimensions should fit")
	// FitsInto ignores positions entirely.
	assert.True(t, FitsInto(small.MovedTo(d("100"), d("100")), big), "position should not matter")
}

func TestIntersectStrict(t *testing.T) {
	a := New(d("4"), d("4"), d("0"), d("0"))
	b := New(d("4"), d("4"), d("2"), d("2"))
	touchingEdge := New(d("4"), d("4"), d("4"), d("0"))
	touchingCorner := New(d("4"), d("4"), d("4"), d("4"))
	apart := New(d("4"), d("4"), d("10"), d("0"))

	assert.True(t, Intersect(a, b), "overlapping rects should intersect")
	assert.True(t, Intersect(b, a), "intersection should be symmetric")
	assert.False(t, Intersect(a, touchingEdge), "shared edge is not an intersection")
	assert.False(t, Intersect(a, touchingCorner), "shared corner is not an intersection")
	assert.False(t, Intersect(a, apart), "disjoint rects should not intersect")
}

func TestAxisIntersect(t *testing.T) {
	a := New(d("4"), d("4"), d("0"), d("0"))
	// Overlaps in x only: above a.
	above := New(d("4"), d("4"), d("2"), d("10"))

	assert.True(t, XIntersect(a, above), "x projections overlap")
	assert.False(t, YIntersect(a, above), "y projections do not overlap")
	assert.False(t, Intersect(a, above), "projection overlap in one axis is not enough")
}

func TestContains(t *testing.T) {
	outer := New(d("10"), d("10"), d("0"), d("0"))
	inner := New(d("4"), d("4"), d("3"), d("3"))
	flush := New(d("10"), d("10"), d("0"), d("0"))
	sticking := New(d("4"), d("4"), d("8"), d("3"))

	assert.True(t, Contains(outer, inner), "inner rect should be contained")
	assert.True(t, Contains(outer, flush), "a rect contains itself")
	assert.False(t, Contains(outer, sticking), "rect crossing the right edge is not contained")
	assert.False(t, Contains(inner, outer), "containment is not symmetric")
}

func TestContainsPoint(t *testing.T) {
	r := New(d("10"), d("10"), d("0"), d("0"))

	assert.True(t, ContainsPoint(r, d("5"), d("5")), "interior point")
	assert.True(t, ContainsPoint(r, d("0"), d("0")), "corner point counts")
	assert.True(t, ContainsPoint(r, d("10"), d("5")), "edge point counts")
	assert.False(t, ContainsPoint(r, d("10.0001"), d("5")), "point past the edge does not count")
}

func TestEmpty(t *testing.T) {
	assert.True(t, NewSized(d("0"), d("5")).Empty(), "zero width is empty")
	assert.True(t, NewSized(d("5"), d("0")).Empty(), "zero height is empty")
	assert.False(t, NewSized(d("1"), d("1")).Empty(), "positive dims are not empty")
}
