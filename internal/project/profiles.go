package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/depotplan/internal/model"
)

// DefaultProfilesDir returns the default directory for storing custom
// vehicle profiles.
func DefaultProfilesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "depotplan")
	return dir, nil
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() (string, error) {
	dir, err := DefaultProfilesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.json"), nil
}

// SaveCustomProfiles saves custom vehicle profiles to a JSON file. Built-in
// profiles are never written; they are compiled into the binary.
func SaveCustomProfiles(path string, profiles []model.VehicleProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom vehicle profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.VehicleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.VehicleProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.VehicleProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.VehicleProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.VehicleProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	return LoadCustomProfiles(path)
}

// AllProfiles returns the built-in profiles followed by the given custom
// ones. A custom profile with the same name as a built-in replaces it.
func AllProfiles(custom []model.VehicleProfile) []model.VehicleProfile {
	all := model.BuiltinProfiles()
	for _, c := range custom {
		replaced := false
		for i := range all {
			if all[i].Name == c.Name {
				all[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			all = append(all, c)
		}
	}
	return all
}

// FindProfile looks up a profile by name among the built-ins and the given
// custom profiles.
func FindProfile(name string, custom []model.VehicleProfile) (model.VehicleProfile, bool) {
	for _, p := range AllProfiles(custom) {
		if p.Name == name {
			return p, true
		}
	}
	return model.VehicleProfile{}, false
}

// ExportProfile exports a single vehicle profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.VehicleProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single vehicle profile from a JSON file.
func ImportProfile(path string) (model.VehicleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.VehicleProfile{}, err
	}

	var profile model.VehicleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.VehicleProfile{}, err
	}

	if profile.Name == "" {
		return model.VehicleProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
