package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/geom"
	"github.com/piwi3910/depotplan/internal/model"
)

// State describes where a bin is in its packing lifecycle.
type State int

const (
	// StateUnpacked is a fresh or reset bin. Items may be added freely.
	StateUnpacked State = iota
	// StateFeasible means the last Pack placed every item.
	StateFeasible
	// StateInfeasible means the last Pack could not place every item.
	// The partial placement up to the failing item is kept for inspection.
	StateInfeasible
)

func (s State) String() string {
	switch s {
	case StateFeasible:
		return "feasible"
	case StateInfeasible:
		return "infeasible"
	default:
		return "unpacked"
	}
}

// Snapshot captures the packed outlines and the free-rectangle pool after
// one placement step, for replaying how a layout grew.
type Snapshot struct {
	Items      []geom.Rect
	Availables []geom.Rect
}

// Bin packs areas into an A x B plot first-fit over a pool of available
// rectangles. Items are sorted by conflict category and size before
// placement; each placed item cuts the availables it intersects into the
// strips left free around it.
//
// A Bin packs once. After Pack the verdict is fixed; to try a different
// item list, add or remove items and call Repack.
type Bin struct {
	A decimal.Decimal
	B decimal.Decimal

	// Items is the packing order input. Callers may append between packs;
	// Pack sorts it in place.
	Items []*model.Area

	// PackedItems holds the successfully placed items in placement order.
	PackedItems []*model.Area

	// Availables is the current free-rectangle pool, ordered by height
	// then width.
	Availables []geom.Rect

	// RecordHistory enables snapshotting after every placement.
	RecordHistory bool
	History       []Snapshot

	state         State
	allowEnclosed bool
}

// NewBin returns an empty bin for an a x b plot.
func NewBin(a, b decimal.Decimal) *Bin {
	bin := &Bin{A: a, B: b}
	bin.reset()
	return bin
}

// Dims returns the plot dimensions.
func (b *Bin) Dims() (decimal.Decimal, decimal.Decimal) {
	return b.A, b.B
}

// State returns the current lifecycle state.
func (b *Bin) State() State { return b.state }

// Feasible reports whether the last Pack placed every item.
func (b *Bin) Feasible() bool { return b.state == StateFeasible }

// AddItem appends an area to the packing input.
func (b *Bin) AddItem(ar *model.Area) {
	b.Items = append(b.Items, ar)
}

// ItemCount returns the number of areas in the packing input.
func (b *Bin) ItemCount() int { return len(b.Items) }

// Packed returns the placed items of the last Pack.
func (b *Bin) Packed() []*model.Area { return b.PackedItems }

// Plot returns the plot as a rectangle at the origin.
func (b *Bin) Plot() geom.Rect {
	return geom.Rect{A: b.A, B: b.B}
}

func (b *Bin) reset() {
	b.PackedItems = nil
	b.Availables = []geom.Rect{b.Plot()}
	b.History = nil
	b.state = StateUnpacked
}

// Pack places all items. It returns an error only for usage mistakes and
// violated internal invariants; running out of space is a verdict, not an
// error, and is reported through Feasible and State.
func (b *Bin) Pack() error {
	return b.packWith(b.tryPlace)
}

// Repack discards the previous placement and packs the current item list
// from scratch.
func (b *Bin) Repack() error {
	b.reset()
	return b.Pack()
}

// packWith runs the packing loop with the given placement strategy.
// BinWithDistances supplies its clearance-aware strategy here.
func (b *Bin) packWith(place func(*model.Area) (bool, error)) error {
	if b.state != StateUnpacked {
		return fmt.Errorf("%w: bin already packed, use Repack", ErrUsage)
	}
	if len(b.Items) == 0 {
		return fmt.Errorf("%w: no items to pack", ErrUsage)
	}

	if !b.precheck() {
		b.state = StateInfeasible
		return nil
	}

	b.sortItems()
	b.snapshot()

	for _, item := range b.Items {
		placed, err := place(item)
		if err != nil {
			return err
		}
		if !placed {
			b.state = StateInfeasible
			return nil
		}
		b.PackedItems = append(b.PackedItems, item)
		if err := b.updateAvailables(item); err != nil {
			return err
		}
		b.snapshot()
	}

	if err := b.validatePacked(); err != nil {
		return err
	}
	b.state = StateFeasible
	return nil
}

// precheck rejects inputs that cannot possibly fit: an item larger than the
// plot in either dimension, or a summed outer area exceeding the plot area.
func (b *Bin) precheck() bool {
	plot := b.Plot()
	total := decimal.Zero
	for _, item := range b.Items {
		out := item.Outer()
		if !geom.FitsInto(out, plot) {
			return false
		}
		total = total.Add(out.Area())
	}
	return total.LessThanOrEqual(plot.Area())
}

// sortItems orders the input by descending conflict category, then
// descending width and height, so the hardest shapes are placed while the
// plot is still open.
func (b *Bin) sortItems() {
	sort.SliceStable(b.Items, func(i, j int) bool {
		ci, cj := b.Items[i].ConflictCategory(), b.Items[j].ConflictCategory()
		if ci != cj {
			return ci > cj
		}
		ai, aj := b.Items[i].OuterA(), b.Items[j].OuterA()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return b.Items[i].OuterB().GreaterThan(b.Items[j].OuterB())
	})
}

// tryPlace puts the item into the first available it fits, bottom-left
// aligned. It reports false when no available is big enough.
func (b *Bin) tryPlace(item *model.Area) (bool, error) {
	out := item.Outer()
	for _, av := range b.Availables {
		if geom.FitsInto(out, av) {
			item.MoveTo(av.X, av.Y)
			return true, nil
		}
	}
	return false, nil
}

// TryPlace tests whether the item can currently be placed without
// committing it to the bin. The item's position is updated as a side
// effect. The free-rectangle pool is left untouched, so the result answers
// "would one more of these fit right now".
func (b *Bin) TryPlace(item *model.Area) (bool, error) {
	return b.tryPlace(item)
}

// updateAvailables replaces every available intersecting the newly placed
// item by the strips left free around it, prunes contained leftovers and
// restores the scan order.
func (b *Bin) updateAvailables(item *model.Area) error {
	out := item.Outer()
	var next []geom.Rect
	for _, av := range b.Availables {
		if !geom.Intersect(av, out) {
			next = append(next, av)
			continue
		}
		parts, err := splitAvailable(av, out, b.allowEnclosed)
		if err != nil {
			return err
		}
		next = append(next, parts...)
	}
	next = pruneContained(next)

	for _, av := range next {
		if av.Empty() {
			return fmt.Errorf("%w: degenerate available %s after split", ErrInternal, av)
		}
		for _, packed := range b.PackedItems {
			if geom.Intersect(av, packed.Outer()) {
				return fmt.Errorf("%w: available %s overlaps packed item %s", ErrInternal, av, packed.Label)
			}
		}
	}

	sortAvailables(next)
	b.Availables = next
	return nil
}

// validatePacked confirms no two placed items overlap and every item lies
// within the plot.
func (b *Bin) validatePacked() error {
	plot := b.Plot()
	for i, item := range b.PackedItems {
		out := item.Outer()
		if !geom.Contains(plot, out) {
			return fmt.Errorf("%w: item %s placed outside the plot", ErrInternal, item.Label)
		}
		for _, other := range b.PackedItems[i+1:] {
			if geom.Intersect(out, other.Outer()) {
				return fmt.Errorf("%w: items %s and %s overlap", ErrInternal, item.Label, other.Label)
			}
		}
	}
	return nil
}

func (b *Bin) snapshot() {
	if !b.RecordHistory {
		return
	}
	snap := Snapshot{
		Items:      make([]geom.Rect, len(b.PackedItems)),
		Availables: append([]geom.Rect(nil), b.Availables...),
	}
	for i, item := range b.PackedItems {
		snap.Items[i] = item.Outer()
	}
	b.History = append(b.History, snap)
}

// CountInner returns the total number of vehicle slots across all packed
// items. Items the last Pack could not place do not count.
func (b *Bin) CountInner() int {
	count := 0
	for _, item := range b.PackedItems {
		count += item.Count
	}
	return count
}

// InnerArea returns the summed slot surface of all packed items.
func (b *Bin) InnerArea() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.PackedItems {
		total = total.Add(item.InnerArea())
	}
	return total
}

// UtilRate returns the share of the plot covered by the packed items' outer
// boxes.
func (b *Bin) UtilRate() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.PackedItems {
		total = total.Add(item.Outer().Area())
	}
	return total.Div(b.Plot().Area())
}

// InnerUtilRate returns the share of the plot covered by the packed vehicle
// slots themselves. For angled rows this is lower than UtilRate because the
// outer box includes the unusable corners around the rotated slots.
func (b *Bin) InnerUtilRate() decimal.Decimal {
	return b.InnerArea().Div(b.Plot().Area())
}
