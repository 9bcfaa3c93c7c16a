// Package engine packs parking areas into a rectangular depot plot. Bin is
// the plain first-fit packer over a free-rectangle pool, BinWithDistances
// adds maneuvering buffers and boundary clearances on top of it.
package engine

import "errors"

// ErrUsage marks caller mistakes such as packing twice without a repack or
// packing an empty item list.
var ErrUsage = errors.New("packing usage error")

// ErrInternal marks violated packer invariants. A wrapped ErrInternal means
// the free-rectangle bookkeeping produced an impossible state and the layout
// must not be trusted.
var ErrInternal = errors.New("packing invariant violated")
