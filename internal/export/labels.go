package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each area placard's QR code. Depot
// staff scan these to pull up where an area sits and what it holds.
type LabelInfo struct {
	AreaID    string  `json:"id"`
	AreaLabel string  `json:"label"`
	Kind      string  `json:"kind"`
	Slots     int     `json:"slots"`
	X         float64 `json:"x_m"`
	Y         float64 `json:"y_m"`
	Width     float64 `json:"width_m"`
	Height    float64 `json:"height_m"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos extracts placard data from a layout plan, one entry per
// packed area.
func CollectLabelInfos(plan Plan) []LabelInfo {
	var labels []LabelInfo
	for _, ar := range plan.Areas {
		labels = append(labels, LabelInfo{
			AreaID:    ar.ID,
			AreaLabel: ar.Label,
			Kind:      ar.Kind.String(),
			Slots:     ar.Count,
			X:         ar.X,
			Y:         ar.Y,
			Width:     ar.W,
			Height:    ar.H,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded placards, one per packed area.
// Each placard carries the area name, kind, slot count and position, plus a
// QR code encoding the same data as JSON. Labels are laid out on a standard
// label sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, plan Plan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no packed areas to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.AreaLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single placard at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s", info.AreaID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Area label (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate label if too long
	areaLabel := info.AreaLabel
	if pdf.GetStringWidth(areaLabel) > textW {
		for len(areaLabel) > 0 && pdf.GetStringWidth(areaLabel+"...") > textW {
			areaLabel = areaLabel[:len(areaLabel)-1]
		}
		areaLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, areaLabel, "", 1, "L", false, 0, "")

	// Kind and slot count
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s, %d slots", info.Kind, info.Slots), "", 1, "L", false, 0, "")

	// Footprint and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("%.1f x %.1f m @ (%.1f, %.1f)", info.Width, info.Height, info.X, info.Y)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}
