// Package project persists depot planning data as JSON files: scenarios
// (plot plus requested areas), custom vehicle profiles and full backups.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/model"
)

// Scenario is one saved depot configuration: the plot, the vehicle profile
// to use and the list of requested areas. The profile is referenced by name
// and resolved against the built-in and custom profiles on load.
type Scenario struct {
	Name    string             `json:"name"`
	Profile string             `json:"profile"`
	Plot    model.PlotSettings `json:"plot"`
	Areas   []model.AreaSpec   `json:"areas"`
}

// Validate checks the scenario for obvious mistakes before packing.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if err := s.Plot.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if len(s.Areas) == 0 {
		return fmt.Errorf("scenario %q has no areas", s.Name)
	}
	return nil
}

// ResolveProfile finds the vehicle profile the scenario names, searching the
// built-in profiles first and then the given custom ones.
func (s Scenario) ResolveProfile(custom []model.VehicleProfile) (model.VehicleProfile, error) {
	for _, p := range model.BuiltinProfiles() {
		if p.Name == s.Profile {
			return p, nil
		}
	}
	for _, p := range custom {
		if p.Name == s.Profile {
			return p, nil
		}
	}
	return model.VehicleProfile{}, fmt.Errorf("scenario %q references unknown profile %q", s.Name, s.Profile)
}

// DefaultConfigDir returns the directory for application data files.
// This is located at ~/.depotplan and is created if missing.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".depotplan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveScenario writes a scenario to a JSON file.
func SaveScenario(path string, s Scenario) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScenario reads a scenario from a JSON file. Scenario files are named
// explicitly by the user, so a missing file is an error here.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("cannot read scenario file: %w", err)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("cannot parse scenario file: %w", err)
	}
	if s.Areas == nil {
		s.Areas = []model.AreaSpec{}
	}
	return s, nil
}

// DemoScenario returns a small built-in scenario used when the CLI is run
// without a scenario file.
func DemoScenario() Scenario {
	profile := model.StandardBus()
	return Scenario{
		Name:    "Demo depot",
		Profile: profile.Name,
		Plot: model.DefaultPlotSettings(profile, decimal.NewFromInt(120), decimal.NewFromInt(90)),
		Areas: []model.AreaSpec{
			{Label: "Lane A", Kind: model.KindLine, Count: 3},
			{Label: "Row B", Kind: model.KindDirectRow, Count: 6, Angle: 45},
			{Label: "Double C", Kind: model.KindDirectDoubleRow, Count: 8},
		},
	}
}
