package engine

import (
	"fmt"

	"github.com/piwi3910/depotplan/internal/model"
)

// Repacker is the narrow packing contract the capacity probes need: a
// growable item list and repacking from scratch.
type Repacker interface {
	Pack() error
	Repack() error
	Feasible() bool
	AddItem(*model.Area)
	ItemCount() int
}

// Placer is the single-shot placement test MaxCapacity probes with.
type Placer interface {
	TryPlace(*model.Area) (bool, error)
}

// MaxCount reports how many identical areas fit into the bin. build must
// return a fresh area per call; areas are appended and the bin repacked
// until the first addition that no longer fits. The bin must start empty
// and unpacked; afterwards it holds one area more than fits, in the
// infeasible state. A result of 0 means not even one area fits.
func MaxCount(bin Repacker, build func() (*model.Area, error)) (int, error) {
	item, err := build()
	if err != nil {
		return 0, err
	}
	bin.AddItem(item)
	if err := bin.Pack(); err != nil {
		return 0, err
	}
	for bin.Feasible() {
		next, err := build()
		if err != nil {
			return 0, err
		}
		bin.AddItem(next)
		if err := bin.Repack(); err != nil {
			return 0, err
		}
	}
	return bin.ItemCount() - 1, nil
}

// MaxCapacity reports the largest slot count for which a single area still
// fits into the bin next to its current content. build must return an area
// with the given slot count; counts from minCount up are probed with
// TryPlace until the first that no longer fits. A result of minCount-1
// means not even the minimum fits. The probe does not alter the bin, but
// the probed areas' positions are clobbered.
func MaxCapacity(bin Placer, build func(count int) (*model.Area, error), minCount, limit int) (int, error) {
	if minCount < 1 {
		minCount = 1
	}
	if limit < minCount {
		return 0, fmt.Errorf("%w: capacity probe limit %d below minimum %d", ErrUsage, limit, minCount)
	}
	for count := minCount; ; count++ {
		if count > limit {
			return 0, fmt.Errorf("%w: capacity probe did not converge within %d slots", ErrInternal, limit)
		}
		item, err := build(count)
		if err != nil {
			return 0, err
		}
		ok, err := bin.TryPlace(item)
		if err != nil {
			return 0, err
		}
		if !ok {
			return count - 1, nil
		}
	}
}
