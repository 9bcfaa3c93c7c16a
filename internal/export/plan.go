// Package export renders packed depot layouts to shareable formats: a PDF
// layout sheet, a DXF drawing for CAD exchange, an Excel report and
// QR-coded area placards.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/geom"
	"github.com/piwi3910/depotplan/internal/model"
)

// PackedPlot is the view of a packed bin the exporters consume.
type PackedPlot interface {
	Dims() (decimal.Decimal, decimal.Decimal)
	Packed() []*model.Area
	Feasible() bool
	UtilRate() decimal.Decimal
	CountInner() int
}

// Box is an axis-aligned rectangle in plot metres, converted to float for
// rendering.
type Box struct {
	X, Y, W, H float64
}

// SlotBox is a vehicle slot outline with its rotation in degrees around the
// bottom-left corner.
type SlotBox struct {
	Box
	Angle int
}

// PlacedArea is the drawable summary of one packed area.
type PlacedArea struct {
	ID      string
	Label   string
	Kind    model.AreaKind
	Count   int
	Box
	Slots   []SlotBox
	Buffers []Box
}

// Plan is the complete drawable summary of one packing result. Exporters
// take a Plan rather than the bin itself so reports can be rendered from
// stored results as well.
type Plan struct {
	Title string
	PlotW float64
	PlotH float64

	// Clearance strips in metres: left, bottom, right, top.
	Clearance [4]float64

	Areas      []PlacedArea
	Feasible   bool
	UtilRate   float64
	CountInner int
}

func boxFromRect(r geom.Rect) Box {
	return Box{
		X: r.X.InexactFloat64(),
		Y: r.Y.InexactFloat64(),
		W: r.A.InexactFloat64(),
		H: r.B.InexactFloat64(),
	}
}

// NewPlan captures the current placement of the bin.
func NewPlan(bin PackedPlot, title string) Plan {
	w, h := bin.Dims()
	plan := Plan{
		Title:      title,
		PlotW:      w.InexactFloat64(),
		PlotH:      h.InexactFloat64(),
		Feasible:   bin.Feasible(),
		UtilRate:   bin.UtilRate().InexactFloat64(),
		CountInner: bin.CountInner(),
	}
	for _, ar := range bin.Packed() {
		placed := PlacedArea{
			ID:    ar.ID,
			Label: ar.Label,
			Kind:  ar.Kind,
			Count: ar.Count,
			Box:   boxFromRect(ar.Outer()),
		}
		for _, slot := range ar.Slots() {
			placed.Slots = append(placed.Slots, SlotBox{Box: boxFromRect(slot), Angle: slot.Angle})
		}
		for _, buf := range []geom.Rect{ar.BufferLeft(), ar.BufferBottom(), ar.BufferRight(), ar.BufferTop()} {
			if !buf.Empty() {
				placed.Buffers = append(placed.Buffers, boxFromRect(buf))
			}
		}
		plan.Areas = append(plan.Areas, placed)
	}
	return plan
}

// SetClearance records the boundary strips for rendering. Plans built from
// a plain bin have none.
func (p *Plan) SetClearance(cl model.EdgeClearance) {
	p.Clearance = [4]float64{
		cl.Left.InexactFloat64(),
		cl.Bottom.InexactFloat64(),
		cl.Right.InexactFloat64(),
		cl.Top.InexactFloat64(),
	}
}
