package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/geom"
	"github.com/piwi3910/depotplan/internal/model"
)

// maxResolveIterations caps the buffer displacement loop per item. The
// displacement is strictly monotonic, so hitting the cap means the
// bookkeeping is broken rather than the plot being crowded.
const maxResolveIterations = 50

// BinWithDistances packs like Bin but honours maneuvering buffers between
// items and the clearance strips along the plot boundary. Placement starts
// at an available's bottom-left corner and displaces the item right and up
// until its buffers are satisfied or the available is exhausted.
//
// Buffers reaching past the right or top plot edge are cut off at the
// boundary; only the clearance strips themselves are enforced there.
type BinWithDistances struct {
	Bin
	Clearance model.EdgeClearance
}

// NewBinWithDistances returns an empty clearance-aware bin for an a x b
// plot.
func NewBinWithDistances(a, b decimal.Decimal, clearance model.EdgeClearance) *BinWithDistances {
	d := &BinWithDistances{
		Bin:       Bin{A: a, B: b},
		Clearance: clearance,
	}
	// Displaced items regularly end up strictly inside an available, which
	// the plain bin treats as a broken invariant.
	d.allowEnclosed = true
	d.reset()
	return d
}

// Pack places all items honouring buffers and clearances.
func (d *BinWithDistances) Pack() error {
	return d.packWith(d.tryPlace)
}

// Repack discards the previous placement and packs from scratch.
func (d *BinWithDistances) Repack() error {
	d.reset()
	return d.Pack()
}

// TryPlace tests a single clearance-aware placement without committing it.
// The item's position is updated as a side effect.
func (d *BinWithDistances) TryPlace(item *model.Area) (bool, error) {
	return d.tryPlace(item)
}

func (d *BinWithDistances) zoneLeft() geom.Rect {
	return geom.Rect{A: d.Clearance.Left, B: d.B}
}

func (d *BinWithDistances) zoneRight() geom.Rect {
	return geom.Rect{A: d.Clearance.Right, B: d.B, X: d.A.Sub(d.Clearance.Right)}
}

func (d *BinWithDistances) zoneBottom() geom.Rect {
	return geom.Rect{A: d.A, B: d.Clearance.Bottom}
}

func (d *BinWithDistances) zoneTop() geom.Rect {
	return geom.Rect{A: d.A, B: d.Clearance.Top, Y: d.B.Sub(d.Clearance.Top)}
}

// tryPlace walks the availables and attempts a resolved placement in each
// one the item nominally fits into.
func (d *BinWithDistances) tryPlace(item *model.Area) (bool, error) {
	out := item.Outer()
	for _, av := range d.Availables {
		if !geom.FitsInto(out, av) {
			continue
		}
		item.MoveTo(av.X, av.Y)
		ok, err := d.resolve(av, item)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// resolve displaces the item within av until all buffer and clearance
// constraints hold. It reports false when the item escapes av or a
// right/top constraint cannot be satisfied by displacement.
func (d *BinWithDistances) resolve(av geom.Rect, item *model.Area) (bool, error) {
	// The plot's left and bottom edges are resolved by shifting the item
	// inward by whichever is deeper, its own buffer or the clearance strip.
	if item.BufferLeft().Left().IsNegative() || geom.Intersect(item.Outer(), d.zoneLeft()) {
		item.MoveTo(decimal.Max(item.BufLeft, d.Clearance.Left), item.Y)
		if !geom.Contains(av, item.Outer()) {
			return false, nil
		}
	}
	if item.BufferBottom().Bottom().IsNegative() || geom.Intersect(item.Outer(), d.zoneBottom()) {
		item.MoveTo(item.X, decimal.Max(item.BufBottom, d.Clearance.Bottom))
		if !geom.Contains(av, item.Outer()) {
			return false, nil
		}
	}

	// Conflicts with already packed items are resolved by shifting right
	// past the offender, then up, rechecking the other axis after every
	// shift until a pass over both axes is clean.
	leftOK, bottomOK := false, false
	for iter := 0; !(leftOK && bottomOK); iter++ {
		if iter >= maxResolveIterations {
			return false, fmt.Errorf("%w: buffer displacement of %s did not converge", ErrInternal, item.Label)
		}

		for _, packed := range d.PackedItems {
			if geom.Intersect(item.BufferLeft(), packed.Outer()) || geom.Intersect(item.Outer(), packed.BufferRight()) {
				shifted := packed.Outer().Right().Add(decimal.Max(item.BufLeft, packed.BufRight))
				if shifted.LessThanOrEqual(item.X) {
					return false, fmt.Errorf("%w: displacement of %s moved backwards", ErrInternal, item.Label)
				}
				item.MoveTo(shifted, item.Y)
				bottomOK = false
			}
		}
		if !geom.Contains(av, item.Outer()) {
			return false, nil
		}
		leftOK = true

		if !bottomOK {
			for _, packed := range d.PackedItems {
				if geom.Intersect(item.BufferBottom(), packed.Outer()) || geom.Intersect(item.Outer(), packed.BufferTop()) {
					shifted := packed.Outer().Top().Add(decimal.Max(item.BufBottom, packed.BufTop))
					if shifted.LessThanOrEqual(item.Y) {
						return false, fmt.Errorf("%w: displacement of %s moved backwards", ErrInternal, item.Label)
					}
					item.MoveTo(item.X, shifted)
					leftOK = false
				}
			}
			if !geom.Contains(av, item.Outer()) {
				return false, nil
			}
			bottomOK = true
		}
	}

	out := item.Outer()
	for _, packed := range d.PackedItems {
		if geom.Intersect(out, packed.Outer()) {
			return false, nil
		}
	}

	// Right and top are validated, not displaced: the item must stay clear
	// of the clearance strips and inside the plot, and its buffers must not
	// reach other items. Its own buffers may be truncated by the boundary.
	if out.Right().GreaterThan(d.A) || geom.Intersect(out, d.zoneRight()) {
		return false, nil
	}
	for _, packed := range d.PackedItems {
		if geom.Intersect(item.BufferRight(), packed.Outer()) || geom.Intersect(out, packed.BufferLeft()) {
			return false, nil
		}
	}
	if out.Top().GreaterThan(d.B) || geom.Intersect(out, d.zoneTop()) {
		return false, nil
	}
	for _, packed := range d.PackedItems {
		if geom.Intersect(item.BufferTop(), packed.Outer()) || geom.Intersect(out, packed.BufferBottom()) {
			return false, nil
		}
	}
	return true, nil
}
