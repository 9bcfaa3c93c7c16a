package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// ExportDXF writes the layout plan as a DXF drawing for CAD exchange.
// Coordinates are in plot metres on separate layers for the plot outline,
// clearance strips, area boxes, slot outlines and buffers.
func ExportDXF(path string, plan Plan) error {
	if plan.PlotW <= 0 || plan.PlotH <= 0 {
		return fmt.Errorf("plan has no plot dimensions")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("PLOT", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	drawBox(d, Box{X: 0, Y: 0, W: plan.PlotW, H: plan.PlotH})

	if _, err := d.AddLayer("CLEARANCE", color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	left, bottom, right, top := plan.Clearance[0], plan.Clearance[1], plan.Clearance[2], plan.Clearance[3]
	for _, s := range []Box{
		{X: 0, Y: 0, W: left, H: plan.PlotH},
		{X: 0, Y: 0, W: plan.PlotW, H: bottom},
		{X: plan.PlotW - right, Y: 0, W: right, H: plan.PlotH},
		{X: 0, Y: plan.PlotH - top, W: plan.PlotW, H: top},
	} {
		if s.W > 0 && s.H > 0 {
			drawBox(d, s)
		}
	}

	if _, err := d.AddLayer("AREAS", color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, ar := range plan.Areas {
		drawBox(d, ar.Box)
	}

	if _, err := d.AddLayer("SLOTS", color.Blue, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, ar := range plan.Areas {
		for _, slot := range ar.Slots {
			drawRotatedBox(d, slot)
		}
	}

	if _, err := d.AddLayer("BUFFERS", color.Magenta, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, ar := range plan.Areas {
		for _, buf := range ar.Buffers {
			drawBox(d, buf)
		}
	}

	return d.SaveAs(path)
}

// drawBox draws an axis-aligned rectangle as four lines on the current
// layer.
func drawBox(d *drawing.Drawing, b Box) {
	x1, y1 := b.X, b.Y
	x2, y2 := b.X+b.W, b.Y+b.H
	d.Line(x1, y1, 0, x2, y1, 0)
	d.Line(x2, y1, 0, x2, y2, 0)
	d.Line(x2, y2, 0, x1, y2, 0)
	d.Line(x1, y2, 0, x1, y1, 0)
}

// drawRotatedBox draws a slot outline rotated around its bottom-left
// anchor.
func drawRotatedBox(d *drawing.Drawing, slot SlotBox) {
	if slot.Angle == 0 {
		drawBox(d, slot.Box)
		return
	}
	rad := float64(slot.Angle) * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	rotate := func(dx, dy float64) (float64, float64) {
		return slot.X + dx*cos - dy*sin, slot.Y + dx*sin + dy*cos
	}
	x1, y1 := rotate(0, 0)
	x2, y2 := rotate(slot.W, 0)
	x3, y3 := rotate(slot.W, slot.H)
	x4, y4 := rotate(0, slot.H)
	d.Line(x1, y1, 0, x2, y2, 0)
	d.Line(x2, y2, 0, x3, y3, 0)
	d.Line(x3, y3, 0, x4, y4, 0)
	d.Line(x4, y4, 0, x1, y1, 0)
}
