package model

import "github.com/shopspring/decimal"

// VehicleProfile bundles the slot dimensions and driving clearances for one
// vehicle class. All lengths are in metres and already include the safety
// margin around the parked vehicle, so a slot rectangle is the full footprint
// an occupied space needs.
type VehicleProfile struct {
	Name string `json:"name"`

	// Slot footprint including safety margin.
	SlotWidth  decimal.Decimal `json:"slot_width"`
	SlotLength decimal.Decimal `json:"slot_length"`

	// Parking angle used for double rows and as default for single rows.
	DirectAngle int `json:"direct_angle"`

	// Maneuvering buffers. The A value applies along the driving axis of the
	// layout kind, the B value across it.
	DirectBufferA decimal.Decimal `json:"direct_buffer_a"`
	DirectBufferB decimal.Decimal `json:"direct_buffer_b"`
	LineBufferA   decimal.Decimal `json:"line_buffer_a"`
	LineBufferB   decimal.Decimal `json:"line_buffer_b"`

	// Clearance kept free along the plot boundary.
	EdgeClearanceA decimal.Decimal `json:"edge_clearance_a"`
	EdgeClearanceB decimal.Decimal `json:"edge_clearance_b"`
}

// StandardBus returns the profile for a 12 m solo bus.
func StandardBus() VehicleProfile {
	return VehicleProfile{
		Name:           "Standard 12m",
		SlotWidth:      decimal.RequireFromString("3.55"),
		SlotLength:     decimal.RequireFromString("12.5"),
		DirectAngle:    45,
		DirectBufferA:  decimal.NewFromInt(8),
		DirectBufferB:  decimal.Zero,
		LineBufferA:    decimal.Zero,
		LineBufferB:    decimal.RequireFromString("19.25"),
		EdgeClearanceA: decimal.NewFromInt(8),
		EdgeClearanceB: decimal.NewFromInt(15),
	}
}

// ArticulatedBus returns the profile for an 18 m articulated bus. The longer
// body needs a deeper pull-out buffer on angled rows.
func ArticulatedBus() VehicleProfile {
	p := StandardBus()
	p.Name = "Articulated 18m"
	p.SlotLength = decimal.RequireFromString("18.5")
	p.DirectBufferA = decimal.NewFromInt(10)
	return p
}

// BuiltinProfiles returns the vehicle profiles shipped with the application.
func BuiltinProfiles() []VehicleProfile {
	return []VehicleProfile{StandardBus(), ArticulatedBus()}
}
