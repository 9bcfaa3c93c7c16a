package project

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/depotplan/internal/model"
)

func minibusProfile() model.VehicleProfile {
	p := model.StandardBus()
	p.Name = "Minibus"
	p.SlotWidth = decimal.NewFromInt(3)
	p.SlotLength = decimal.NewFromInt(8)
	return p
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	profiles := []model.VehicleProfile{minibusProfile()}
	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles error: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(loaded))
	}
	if loaded[0].Name != "Minibus" {
		t.Errorf("expected 'Minibus', got %q", loaded[0].Name)
	}
	if !loaded[0].SlotLength.Equal(decimal.NewFromInt(8)) {
		t.Errorf("expected slot length 8, got %s", loaded[0].SlotLength)
	}
}

func TestLoadCustomProfiles_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty slice, got %d profiles", len(loaded))
	}
}

func TestAllProfiles(t *testing.T) {
	all := AllProfiles(nil)
	if len(all) != 2 {
		t.Fatalf("expected the 2 built-ins, got %d", len(all))
	}

	all = AllProfiles([]model.VehicleProfile{minibusProfile()})
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}
}

func TestAllProfiles_CustomOverridesBuiltin(t *testing.T) {
	override := model.StandardBus()
	override.SlotLength = decimal.NewFromInt(13)

	all := AllProfiles([]model.VehicleProfile{override})
	if len(all) != 2 {
		t.Fatalf("override must replace, not append; got %d profiles", len(all))
	}

	p, ok := FindProfile("Standard 12m", []model.VehicleProfile{override})
	if !ok {
		t.Fatal("expected to find overridden profile")
	}
	if !p.SlotLength.Equal(decimal.NewFromInt(13)) {
		t.Errorf("expected overridden slot length 13, got %s", p.SlotLength)
	}
}

func TestFindProfile(t *testing.T) {
	if _, ok := FindProfile("Articulated 18m", nil); !ok {
		t.Error("expected to find built-in profile")
	}
	if _, ok := FindProfile("Unknown", nil); ok {
		t.Error("must not find unknown profile")
	}
}

func TestExportImportProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minibus.json")

	if err := ExportProfile(path, minibusProfile()); err != nil {
		t.Fatalf("ExportProfile error: %v", err)
	}

	loaded, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile error: %v", err)
	}
	if loaded.Name != "Minibus" {
		t.Errorf("expected 'Minibus', got %q", loaded.Name)
	}
}

func TestImportProfile_NoName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	p := minibusProfile()
	p.Name = ""
	if err := ExportProfile(path, p); err != nil {
		t.Fatalf("ExportProfile error: %v", err)
	}

	if _, err := ImportProfile(path); err == nil {
		t.Error("expected error for profile without name")
	}
}
