package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk profile set.
type File struct {
	Active   string    `yaml:"active" json:"active"`
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// Load reads the profile set from disk. Missing files return an empty set.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, err
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, err
	}
	seen := make(map[string]bool, len(f.Profiles))
	for _, p := range f.Profiles {
		if err := p.Validate(); err != nil {
			return f, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if seen[p.Name] {
			return f, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return f, nil
}

// Save writes the profile set to disk, creating parent directories as needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ByName returns the named preset.
func (f File) ByName(name string) (Profile, bool) {
	for _, p := range f.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// ActiveProfile returns the active preset, falling back to the built-in
// default when unset or missing.
func (f File) ActiveProfile() Profile {
	if f.Active != "" {
		if p, ok := f.ByName(f.Active); ok {
			return p
		}
	}
	return Default()
}

// Upsert replaces the preset with the same name or appends it.
func (f *File) Upsert(p Profile) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == p.Name {
			f.Profiles[i] = p
			return
		}
	}
	f.Profiles = append(f.Profiles, p)
}
