package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EdgeClearance is the strip kept free along each plot boundary, per edge.
// A zero depth disables the strip for that edge.
type EdgeClearance struct {
	Left   decimal.Decimal `json:"left"`
	Bottom decimal.Decimal `json:"bottom"`
	Right  decimal.Decimal `json:"right"`
	Top    decimal.Decimal `json:"top"`
}

// UniformClearance returns the same clearance on all four edges.
func UniformClearance(c decimal.Decimal) EdgeClearance {
	return EdgeClearance{Left: c, Bottom: c, Right: c, Top: c}
}

// DefaultClearance returns the profile's boundary clearances, A along the
// sides and B along bottom and top.
func DefaultClearance(p VehicleProfile) EdgeClearance {
	return EdgeClearance{
		Left:   p.EdgeClearanceA,
		Right:  p.EdgeClearanceA,
		Bottom: p.EdgeClearanceB,
		Top:    p.EdgeClearanceB,
	}
}

// DefaultPlotSettings returns settings for an a x b plot with the profile's
// boundary clearances.
func DefaultPlotSettings(p VehicleProfile, a, b decimal.Decimal) PlotSettings {
	return PlotSettings{A: a, B: b, Clearance: DefaultClearance(p)}
}

// PlotSettings describes the depot plot a layout is packed into.
type PlotSettings struct {
	A             decimal.Decimal `json:"a"`
	B             decimal.Decimal `json:"b"`
	Clearance     EdgeClearance   `json:"clearance"`
	RecordHistory bool            `json:"record_history,omitempty"`
}

// Validate checks the plot dimensions and clearances for plausibility.
func (s PlotSettings) Validate() error {
	if !s.A.IsPositive() || !s.B.IsPositive() {
		return fmt.Errorf("plot dimensions must be positive, got %s x %s", s.A, s.B)
	}
	for _, c := range []decimal.Decimal{s.Clearance.Left, s.Clearance.Bottom, s.Clearance.Right, s.Clearance.Top} {
		if c.IsNegative() {
			return fmt.Errorf("edge clearance must not be negative, got %s", c)
		}
	}
	if s.Clearance.Left.Add(s.Clearance.Right).GreaterThanOrEqual(s.A) {
		return fmt.Errorf("side clearances %s + %s leave no usable width", s.Clearance.Left, s.Clearance.Right)
	}
	if s.Clearance.Bottom.Add(s.Clearance.Top).GreaterThanOrEqual(s.B) {
		return fmt.Errorf("vertical clearances %s + %s leave no usable height", s.Clearance.Bottom, s.Clearance.Top)
	}
	return nil
}
