package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/depotplan/internal/geom"
)

// The free-rectangle update classifies how an available rectangle av hangs
// over a newly placed item by a 4-bit corner code and cuts av into the
// overhanging strips. Strips run the full width (below/above) or the full
// height (left/right) of av, so neighbouring strips overlap deliberately;
// pruneContained removes the redundant ones later.

func belowItem(av, item geom.Rect) geom.Rect {
	return geom.Rect{A: av.A, B: item.Bottom().Sub(av.Bottom()), X: av.X, Y: av.Y}
}

func aboveItem(av, item geom.Rect) geom.Rect {
	return geom.Rect{A: av.A, B: av.Top().Sub(item.Top()), X: av.X, Y: item.Top()}
}

func leftOfItem(av, item geom.Rect) geom.Rect {
	return geom.Rect{A: item.Left().Sub(av.Left()), B: av.B, X: av.X, Y: av.Y}
}

func rightOfItem(av, item geom.Rect) geom.Rect {
	return geom.Rect{A: av.Right().Sub(item.Right()), B: av.B, X: item.Right(), Y: av.Y}
}

// cornerCode encodes which edges of av stick out beyond item. Bit 8 is set
// when av's left edge is at or right of the item's, bit 4 when av's bottom
// edge is at or above the item's, bit 2 when av's right edge is strictly
// right of the item's, bit 1 when av's top edge is strictly above. The
// asymmetry between the >= and > comparisons keeps flush edges from
// producing zero-width strips.
func cornerCode(av, item geom.Rect) int {
	code := 0
	if av.Left().GreaterThanOrEqual(item.Left()) {
		code |= 8
	}
	if av.Bottom().GreaterThanOrEqual(item.Bottom()) {
		code |= 4
	}
	if av.Right().GreaterThan(item.Right()) {
		code |= 2
	}
	if av.Top().GreaterThan(item.Top()) {
		code |= 1
	}
	return code
}

// splitAvailable cuts an available rectangle that intersects the placed
// item into the strips left free around the item. allowEnclosed permits the
// item to sit strictly inside av, which happens once buffer displacement
// moves items away from the corner they were assigned to.
func splitAvailable(av, item geom.Rect, allowEnclosed bool) ([]geom.Rect, error) {
	switch code := cornerCode(av, item); code {
	case 0b1111:
		return []geom.Rect{aboveItem(av, item), rightOfItem(av, item)}, nil
	case 0b1110:
		return []geom.Rect{rightOfItem(av, item)}, nil
	case 0b1101:
		return []geom.Rect{aboveItem(av, item)}, nil
	case 0b1011:
		return []geom.Rect{belowItem(av, item), aboveItem(av, item), rightOfItem(av, item)}, nil
	case 0b1010:
		return []geom.Rect{belowItem(av, item), rightOfItem(av, item)}, nil
	case 0b1001:
		return []geom.Rect{belowItem(av, item), aboveItem(av, item)}, nil
	case 0b1000:
		return []geom.Rect{belowItem(av, item)}, nil
	case 0b0111:
		return []geom.Rect{aboveItem(av, item), leftOfItem(av, item), rightOfItem(av, item)}, nil
	case 0b0110:
		return []geom.Rect{leftOfItem(av, item), rightOfItem(av, item)}, nil
	case 0b0101:
		return []geom.Rect{aboveItem(av, item), leftOfItem(av, item)}, nil
	case 0b0100:
		return []geom.Rect{leftOfItem(av, item)}, nil
	case 0b0011:
		if allowEnclosed {
			return []geom.Rect{
				belowItem(av, item), aboveItem(av, item),
				leftOfItem(av, item), rightOfItem(av, item),
			}, nil
		}
		return nil, fmt.Errorf("%w: item enclosed by available %s without displacement", ErrInternal, av)
	case 0b0010:
		return []geom.Rect{belowItem(av, item), leftOfItem(av, item), rightOfItem(av, item)}, nil
	case 0b0001:
		return []geom.Rect{belowItem(av, item), aboveItem(av, item), leftOfItem(av, item)}, nil
	case 0b0000:
		return []geom.Rect{belowItem(av, item), leftOfItem(av, item)}, nil
	default:
		// 0b1100: av lies entirely within the item and is consumed without
		// leaving a strip. This is the exact-fill case.
		return nil, nil
	}
}

// pruneContained drops every available that lies entirely inside another.
// Pairs are visited in descending area order so of two identical rectangles
// exactly one survives.
func pruneContained(avs []geom.Rect) []geom.Rect {
	order := make([]int, len(avs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return avs[order[i]].Area().GreaterThan(avs[order[j]].Area())
	})

	removed := make([]bool, len(avs))
	for oi, i := range order {
		for _, j := range order[oi+1:] {
			if !removed[j] && geom.Contains(avs[i], avs[j]) {
				removed[j] = true
			}
		}
	}

	kept := avs[:0]
	for i, av := range avs {
		if !removed[i] {
			kept = append(kept, av)
		}
	}
	return kept
}

// sortAvailables orders the pool by height, then width, ascending. First-fit
// placement scans this order, so items land in the shallowest strip they fit
// into and the tall availables stay open for the tall items.
func sortAvailables(avs []geom.Rect) {
	sort.SliceStable(avs, func(i, j int) bool {
		if !avs[i].B.Equal(avs[j].B) {
			return avs[i].B.LessThan(avs[j].B)
		}
		return avs[i].A.LessThan(avs[j].A)
	})
}
