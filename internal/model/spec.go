package model

import "fmt"

// AreaSpec is the serializable description of a requested parking area, as
// read from scenario files and import sheets. Build turns it into a placed
// Area using a vehicle profile for the dimensions and buffers.
type AreaSpec struct {
	Label string   `json:"label"`
	Kind  AreaKind `json:"kind"`
	Count int      `json:"count"`
	Angle int      `json:"angle,omitempty"`
}

// Build constructs the Area this spec describes.
func (s AreaSpec) Build(p VehicleProfile) (*Area, error) {
	switch s.Kind {
	case KindLine:
		return NewLineArea(p, s.Label, s.Count)
	case KindDirectRow:
		return NewDirectRowArea(p, s.Label, s.Count, s.Angle)
	case KindDirectDoubleRow:
		return NewDirectDoubleRowArea(p, s.Label, s.Count)
	}
	return nil, fmt.Errorf("unknown area kind %d", s.Kind)
}

// BuildAreas constructs all areas from specs, failing on the first invalid
// one.
func BuildAreas(specs []AreaSpec, p VehicleProfile) ([]*Area, error) {
	areas := make([]*Area, 0, len(specs))
	for i, s := range specs {
		ar, err := s.Build(p)
		if err != nil {
			return nil, fmt.Errorf("area %d (%s): %w", i+1, s.Label, err)
		}
		areas = append(areas, ar)
	}
	return areas, nil
}
