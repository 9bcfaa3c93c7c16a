// Package model holds the domain types for depot layout planning: parking
// area shapes, vehicle profiles and plot settings. An area is a composite
// rectangle made of individual vehicle slots; its outer bounding box is what
// the packing engine places, its buffers are the maneuvering space other
// areas must keep clear.
package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/geom"
)

// AreaKind selects the slot arrangement inside an area.
type AreaKind int

const (
	// KindLine stacks slots nose to tail into a drive-through lane.
	KindLine AreaKind = iota
	// KindDirectRow places slots side by side at a shared angle, each
	// reachable without moving other vehicles.
	KindDirectRow
	// KindDirectDoubleRow interleaves two herringbone columns sharing one
	// access lane.
	KindDirectDoubleRow
)

func (k AreaKind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindDirectRow:
		return "DirectRow"
	case KindDirectDoubleRow:
		return "DirectDoubleRow"
	default:
		return "Unknown"
	}
}

// ParseAreaKind maps the names used in import files to an AreaKind.
func ParseAreaKind(s string) (AreaKind, error) {
	switch s {
	case "line", "Line":
		return KindLine, nil
	case "direct", "directrow", "DirectRow":
		return KindDirectRow, nil
	case "double", "doublerow", "DirectDoubleRow":
		return KindDirectDoubleRow, nil
	}
	return 0, fmt.Errorf("unknown area kind %q", s)
}

// MarshalJSON writes the kind by name so scenario files stay readable.
func (k AreaKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the kind names produced by MarshalJSON as well as
// the lowercase forms used in import files.
func (k *AreaKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAreaKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MaxRowAngle bounds the parking angle of a direct row in degrees. Beyond
// 75 degrees the trigonometry degenerates and the pitch explodes.
const MaxRowAngle = 75

// Area is one contiguous parking area: Count slots of SlotA x SlotB metres
// arranged according to Kind. The outer bounding box and the slot anchors
// are derived once at construction; X and Y are assigned later by the
// packing engine and default to the origin.
//
// Buffer depths describe the clearance required beyond the respective outer
// edge. A zero depth means other areas may sit flush against that edge.
type Area struct {
	ID    string
	Label string
	Kind  AreaKind

	// SlotA and SlotB are the footprint of a single slot before rotation,
	// along and across the slot axis.
	SlotA decimal.Decimal
	SlotB decimal.Decimal
	Count int

	// Angle is the parking angle in degrees. Zero for lines, fixed to the
	// profile angle for double rows, within [-MaxRowAngle, MaxRowAngle]
	// for direct rows. Negative angles mirror the row.
	Angle int

	BufLeft   decimal.Decimal
	BufBottom decimal.Decimal
	BufRight  decimal.Decimal
	BufTop    decimal.Decimal

	X decimal.Decimal
	Y decimal.Decimal

	a, b   decimal.Decimal
	baseDX decimal.Decimal
	baseDY decimal.Decimal
	pitch  decimal.Decimal
	// rightDX anchors the second column of a double row.
	rightDX decimal.Decimal
}

func sinDeg(deg int) decimal.Decimal {
	return decimal.NewFromFloat(math.Sin(float64(deg) * math.Pi / 180))
}

func cosDeg(deg int) decimal.Decimal {
	return decimal.NewFromFloat(math.Cos(float64(deg) * math.Pi / 180))
}

// NewArea builds an area of the given kind from raw slot dimensions. The
// profile-based constructors below are the usual entry points; this one is
// for callers that manage dimensions and buffers themselves.
func NewArea(kind AreaKind, label string, slotA, slotB decimal.Decimal, count, angle int) (*Area, error) {
	if !slotA.IsPositive() || !slotB.IsPositive() {
		return nil, fmt.Errorf("slot dimensions must be positive, got %s x %s", slotA, slotB)
	}
	ar := &Area{
		ID:    uuid.New().String()[:8],
		Label: label,
		Kind:  kind,
		SlotA: slotA,
		SlotB: slotB,
		Count: count,
		Angle: angle,
	}
	var err error
	switch kind {
	case KindLine:
		err = ar.deriveLine()
	case KindDirectRow:
		err = ar.deriveDirectRow()
	case KindDirectDoubleRow:
		err = ar.deriveDoubleRow()
	default:
		err = fmt.Errorf("unknown area kind %d", kind)
	}
	if err != nil {
		return nil, err
	}
	return ar, nil
}

// deriveLine stacks Count slots of SlotA x SlotB on top of each other.
func (ar *Area) deriveLine() error {
	if ar.Count < 2 {
		return fmt.Errorf("line area needs at least 2 slots, got %d", ar.Count)
	}
	if ar.Angle != 0 {
		return fmt.Errorf("line area cannot be angled")
	}
	ar.a = ar.SlotA
	ar.b = ar.SlotB.Mul(decimal.NewFromInt(int64(ar.Count)))
	ar.pitch = ar.SlotB
	return nil
}

// deriveDirectRow computes the bounding box of Count slots rotated by Angle
// and stacked along the y axis. With w = SlotA and d = SlotB, each slot
// projects to w*cos+d*sin horizontally and w*sin+d*cos vertically, and
// consecutive slots are d/cos apart. A negative angle mirrors the row, which
// moves the row anchor from the left to the bottom edge.
func (ar *Area) deriveDirectRow() error {
	if ar.Count < 1 {
		return fmt.Errorf("direct row needs at least 1 slot, got %d", ar.Count)
	}
	if ar.Angle < -MaxRowAngle || ar.Angle > MaxRowAngle {
		return fmt.Errorf("row angle %d out of range [-%d, %d]", ar.Angle, MaxRowAngle, MaxRowAngle)
	}
	sin := sinDeg(ar.Angle)
	cos := cosDeg(ar.Angle)
	across := ar.SlotB.Mul(sin)  // horizontal extent of the slot depth
	along := ar.SlotA.Mul(cos)   // horizontal extent of the slot length
	depth := ar.SlotB.Mul(cos)   // vertical extent of the slot depth
	rise := ar.SlotA.Mul(sin)    // vertical extent of the slot length
	ar.pitch = ar.SlotB.Div(cos) // vertical distance between slot anchors

	rows := decimal.NewFromInt(int64(ar.Count - 1))
	if ar.Angle >= 0 {
		ar.a = across.Add(along)
		ar.b = depth.Add(rise).Add(rows.Mul(ar.pitch))
		ar.baseDX = across
	} else {
		ar.a = along.Sub(across)
		ar.b = depth.Sub(rise).Add(rows.Mul(ar.pitch))
		ar.baseDY = rise.Neg()
	}
	return nil
}

// deriveDoubleRow computes the bounding box of two interleaved columns at
// the fixed double-row angle, the right column offset upward by half a step.
func (ar *Area) deriveDoubleRow() error {
	if ar.Count < 2 {
		return fmt.Errorf("double row needs at least 2 slots, got %d", ar.Count)
	}
	if ar.Angle <= 0 || ar.Angle > MaxRowAngle {
		return fmt.Errorf("double row angle %d out of range (0, %d]", ar.Angle, MaxRowAngle)
	}
	sin := sinDeg(ar.Angle)
	cos := cosDeg(ar.Angle)
	across := ar.SlotB.Mul(sin)
	along := ar.SlotA.Mul(cos)
	depth := ar.SlotB.Mul(cos)
	rise := ar.SlotA.Mul(sin)
	ar.pitch = ar.SlotB.Div(cos)

	two := decimal.NewFromInt(2)
	ar.a = across.Add(along.Mul(two))
	ar.baseDX = across
	ar.rightDX = ar.a

	// Slots alternate between the columns, so the left column holds half of
	// them rounded up.
	slotsLeft := decimal.NewFromInt(int64(ar.Count)).Div(two)
	if ar.Count%2 == 0 {
		slotsLeft = slotsLeft.Add(decimal.RequireFromString("0.5"))
	}
	ar.b = depth.Add(rise).Add(slotsLeft.Sub(decimal.NewFromInt(1)).Mul(ar.pitch))
	if ar.Count%2 == 1 {
		ar.b = ar.b.Add(ar.pitch.Div(two))
	}
	return nil
}

// Outer returns the axis-aligned bounding box of the area at its current
// position.
func (ar *Area) Outer() geom.Rect {
	return geom.Rect{A: ar.a, B: ar.b, X: ar.X, Y: ar.Y}
}

// OuterA returns the outer width.
func (ar *Area) OuterA() decimal.Decimal { return ar.a }

// OuterB returns the outer height.
func (ar *Area) OuterB() decimal.Decimal { return ar.b }

// MoveTo places the bottom-left corner of the outer box at (x, y). Buffers
// and slots follow, they are derived from the current position on read.
func (ar *Area) MoveTo(x, y decimal.Decimal) {
	ar.X = x
	ar.Y = y
}

// Slot returns the footprint of slot i at the area's current position. The
// rectangle carries the slot's own rotation angle; its X and Y anchor the
// unrotated bottom-left corner.
func (ar *Area) Slot(i int) (geom.Rect, error) {
	if i < 0 || i >= ar.Count {
		return geom.Rect{}, fmt.Errorf("slot index %d out of range [0, %d)", i, ar.Count)
	}
	r := geom.Rect{A: ar.SlotA, B: ar.SlotB}
	switch ar.Kind {
	case KindLine:
		r.X = ar.X
		r.Y = ar.Y.Add(ar.pitch.Mul(decimal.NewFromInt(int64(i))))
	case KindDirectRow:
		r.Angle = ar.Angle
		r.X = ar.X.Add(ar.baseDX)
		r.Y = ar.Y.Add(ar.baseDY).Add(ar.pitch.Mul(decimal.NewFromInt(int64(i))))
	case KindDirectDoubleRow:
		if i%2 == 0 {
			r.Angle = ar.Angle
			r.X = ar.X.Add(ar.baseDX)
			r.Y = ar.Y.Add(ar.pitch.Mul(decimal.NewFromInt(int64(i / 2))))
		} else {
			r.Angle = ar.Angle + 90
			r.X = ar.X.Add(ar.rightDX)
			r.Y = ar.Y.Add(ar.pitch).Add(ar.pitch.Mul(decimal.NewFromInt(int64((i - 1) / 2))))
		}
	}
	return r, nil
}

// Slots returns the footprints of all slots.
func (ar *Area) Slots() []geom.Rect {
	out := make([]geom.Rect, ar.Count)
	for i := range out {
		out[i], _ = ar.Slot(i)
	}
	return out
}

// BufferLeft returns the clearance strip beyond the left edge. The strip is
// empty when the depth is zero.
func (ar *Area) BufferLeft() geom.Rect {
	return geom.Rect{A: ar.BufLeft, B: ar.b, X: ar.X.Sub(ar.BufLeft), Y: ar.Y}
}

// BufferRight returns the clearance strip beyond the right edge.
func (ar *Area) BufferRight() geom.Rect {
	return geom.Rect{A: ar.BufRight, B: ar.b, X: ar.X.Add(ar.a), Y: ar.Y}
}

// BufferBottom returns the clearance strip below the bottom edge.
func (ar *Area) BufferBottom() geom.Rect {
	return geom.Rect{A: ar.a, B: ar.BufBottom, X: ar.X, Y: ar.Y.Sub(ar.BufBottom)}
}

// BufferTop returns the clearance strip above the top edge.
func (ar *Area) BufferTop() geom.Rect {
	return geom.Rect{A: ar.a, B: ar.BufTop, X: ar.X, Y: ar.Y.Add(ar.b)}
}

// AWithBuffers returns the horizontal extent including both side buffers.
func (ar *Area) AWithBuffers() decimal.Decimal {
	return ar.BufLeft.Add(ar.a).Add(ar.BufRight)
}

// BWithBuffers returns the vertical extent including both vertical buffers.
func (ar *Area) BWithBuffers() decimal.Decimal {
	return ar.BufBottom.Add(ar.b).Add(ar.BufTop)
}

// AreaTotal returns the surface of the outer box plus its four buffer
// strips. Buffer corners are not part of any strip and do not count.
func (ar *Area) AreaTotal() decimal.Decimal {
	total := ar.Outer().Area()
	for _, buf := range []geom.Rect{ar.BufferLeft(), ar.BufferRight(), ar.BufferBottom(), ar.BufferTop()} {
		total = total.Add(buf.Area())
	}
	return total
}

// InnerArea returns the summed surface of all slots.
func (ar *Area) InnerArea() decimal.Decimal {
	return ar.SlotA.Mul(ar.SlotB).Mul(decimal.NewFromInt(int64(ar.Count)))
}

// UtilizationRate returns the share of the outer box covered by slots.
func (ar *Area) UtilizationRate() decimal.Decimal {
	return ar.InnerArea().Div(ar.Outer().Area())
}

// UtilizationRateWithBuffers returns the share of the outer box plus
// buffers covered by slots.
func (ar *Area) UtilizationRateWithBuffers() decimal.Decimal {
	return ar.InnerArea().Div(ar.AreaTotal())
}

// ConflictCategory ranks area kinds by how much their buffers tend to
// collide with neighbours. The packing order sorts high categories first so
// the bulky shapes claim space before the flexible ones.
func (ar *Area) ConflictCategory() int {
	switch ar.Kind {
	case KindDirectDoubleRow:
		return 4
	case KindDirectRow:
		if ar.Angle >= 0 {
			return 3
		}
		return 1
	default:
		return 2
	}
}

// NewLineArea builds a drive-through line of count slots for the given
// profile. Lines need their pull-out clearance above and below, the sides
// can sit flush.
func NewLineArea(p VehicleProfile, label string, count int) (*Area, error) {
	ar, err := NewArea(KindLine, label, p.SlotWidth, p.SlotLength, count, 0)
	if err != nil {
		return nil, err
	}
	ar.BufLeft = p.LineBufferA
	ar.BufRight = p.LineBufferA
	ar.BufBottom = p.LineBufferB
	ar.BufTop = p.LineBufferB
	return ar, nil
}

// NewDirectRowArea builds an angled row of count slots. A non-negative
// angle opens the row to the left, so the pull-out buffer sits on the left
// edge; a negative angle mirrors the row and the buffer.
func NewDirectRowArea(p VehicleProfile, label string, count, angle int) (*Area, error) {
	ar, err := NewArea(KindDirectRow, label, p.SlotLength, p.SlotWidth, count, angle)
	if err != nil {
		return nil, err
	}
	if angle >= 0 {
		ar.BufLeft = p.DirectBufferA
	} else {
		ar.BufRight = p.DirectBufferA
	}
	ar.BufBottom = p.DirectBufferB
	ar.BufTop = p.DirectBufferB
	return ar, nil
}

// NewDirectDoubleRowArea builds a double row of count slots at the
// profile's parking angle. Both columns pull out sideways, so the deep
// buffer is needed on both sides.
func NewDirectDoubleRowArea(p VehicleProfile, label string, count int) (*Area, error) {
	ar, err := NewArea(KindDirectDoubleRow, label, p.SlotLength, p.SlotWidth, count, p.DirectAngle)
	if err != nil {
		return nil, err
	}
	ar.BufLeft = p.DirectBufferA
	ar.BufRight = p.DirectBufferA
	ar.BufBottom = p.DirectBufferB
	ar.BufTop = p.DirectBufferB
	return ar, nil
}
