package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/depotplan/internal/model"
)

// areaColor represents an RGB fill color for a placed area.
type areaColor struct {
	R, G, B int
}

// areaColors assigns one color per area kind.
var areaColors = map[model.AreaKind]areaColor{
	model.KindLine:            {R: 76, G: 175, B: 80},  // green
	model.KindDirectRow:       {R: 33, G: 150, B: 243}, // blue
	model.KindDirectDoubleRow: {R: 255, G: 152, B: 0},  // orange
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the layout plan onto a single A4 landscape page: the
// plot with its clearance strips, every packed area with its buffers and
// slot outlines, and a stats line.
func ExportPDF(path string, plan Plan) error {
	if plan.PlotW <= 0 || plan.PlotH <= 0 {
		return fmt.Errorf("plan has no plot dimensions")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()
	renderLayoutPage(pdf, plan)
	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the plan on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, plan Plan) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.1f x %.1f m)", plan.Title, plan.PlotW, plan.PlotH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	verdict := "feasible"
	if !plan.Feasible {
		verdict = "INFEASIBLE"
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Areas: %d | Slots: %d | Utilization: %.1f%% | %s",
		len(plan.Areas), plan.CountInner, plan.UtilRate*100, verdict)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scale := math.Min(drawWidth/plan.PlotW, drawHeight/plan.PlotH)
	canvasW := plan.PlotW * scale
	canvasH := plan.PlotH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// The plot's y axis points up, the page's down.
	toPage := func(b Box) (float64, float64, float64, float64) {
		return offsetX + b.X*scale, offsetY + (plan.PlotH-b.Y-b.H)*scale, b.W * scale, b.H * scale
	}

	// Plot background.
	pdf.SetFillColor(235, 235, 228)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawClearance(pdf, plan, toPage)

	for _, ar := range plan.Areas {
		col, ok := areaColors[ar.Kind]
		if !ok {
			col = areaColor{R: 120, G: 120, B: 120}
		}

		// Buffers first so the area box paints over their inner edge.
		pdf.SetAlpha(0.25, "Normal")
		pdf.SetFillColor(col.R, col.G, col.B)
		for _, buf := range ar.Buffers {
			x, y, w, h := toPage(buf)
			pdf.Rect(x, y, w, h, "F")
		}
		pdf.SetAlpha(1.0, "Normal")

		x, y, w, h := toPage(ar.Box)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		drawSlots(pdf, ar, scale, toPage)

		if w > 15 && h > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%s (%d)", ar.Label, ar.Count)
			labelW := pdf.GetStringWidth(label)
			if labelW < w-2 {
				pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}
}

// drawClearance shades the boundary strips kept free along the plot edges.
func drawClearance(pdf *fpdf.Fpdf, plan Plan, toPage func(Box) (float64, float64, float64, float64)) {
	left, bottom, right, top := plan.Clearance[0], plan.Clearance[1], plan.Clearance[2], plan.Clearance[3]
	strips := []Box{
		{X: 0, Y: 0, W: left, H: plan.PlotH},
		{X: 0, Y: 0, W: plan.PlotW, H: bottom},
		{X: plan.PlotW - right, Y: 0, W: right, H: plan.PlotH},
		{X: 0, Y: plan.PlotH - top, W: plan.PlotW, H: top},
	}
	pdf.SetFillColor(200, 200, 200)
	for _, s := range strips {
		if s.W <= 0 || s.H <= 0 {
			continue
		}
		x, y, w, h := toPage(s)
		pdf.Rect(x, y, w, h, "F")
	}
}

// drawSlots outlines the individual vehicle slots, rotated around their
// anchor corner. Rotation is negated because the page's y axis points down.
func drawSlots(pdf *fpdf.Fpdf, ar PlacedArea, scale float64, toPage func(Box) (float64, float64, float64, float64)) {
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.15)
	for _, slot := range ar.Slots {
		x, y, w, h := toPage(slot.Box)
		if slot.Angle == 0 {
			pdf.Rect(x, y, w, h, "D")
			continue
		}
		// The anchor is the slot's unrotated bottom-left corner, which on
		// the flipped page sits at (x, y+h).
		pdf.TransformBegin()
		pdf.TransformRotate(float64(slot.Angle), x, y+h)
		pdf.Rect(x, y, w, h, "D")
		pdf.TransformEnd()
	}
}

// labelFontSize picks a font size that fits the rendered rectangle.
func labelFontSize(w, h float64) float64 {
	size := 8.0
	if w < 30 || h < 12 {
		size = 6.0
	}
	if w < 20 {
		size = 5.0
	}
	return size
}
