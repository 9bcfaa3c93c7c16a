package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/depotplan/internal/model"
)

func TestExportImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	scenarios := []Scenario{testScenario(), DemoScenario()}
	profiles := []model.VehicleProfile{minibusProfile()}

	if err := ExportAllData(path, scenarios, profiles); err != nil {
		t.Fatalf("ExportAllData error: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData error: %v", err)
	}
	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}
	if len(backup.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(backup.Scenarios))
	}
	if backup.Scenarios[0].Name != "North yard" {
		t.Errorf("expected 'North yard', got %q", backup.Scenarios[0].Name)
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "Minibus" {
		t.Errorf("profiles wrong: %+v", backup.Profiles)
	}
}

func TestExportAllData_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "backup.json")

	if err := ExportAllData(path, nil, nil); err != nil {
		t.Fatalf("ExportAllData error: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData error: %v", err)
	}
	if backup.Scenarios == nil || backup.Profiles == nil {
		t.Error("nil slices must be normalized on import")
	}
}

func TestImportAllData_MissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"scenarios":[]}`), 0644); err != nil {
		t.Fatalf("cannot write file: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for backup without version")
	}
}

func TestImportAllData_NotFound(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing backup file")
	}
}
