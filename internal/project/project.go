// Package project reads and writes the emp.toml project manifest that
// `emp new` scaffolds and the driver consults to find the entry file
// and project root.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed emp.toml.
type Manifest struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`

	Vendor struct {
		Dir string `toml:"dir"`
	} `toml:"vendor"`
}

const defaultVendorDir = "emp_mods"

// DefaultManifest returns the manifest written by `emp new <name>`.
func DefaultManifest(name string) Manifest {
	m := Manifest{Name: name, Entry: filepath.Join("src", "main.em")}
	m.Vendor.Dir = defaultVendorDir
	return m
}

// Load reads and parses emp.toml at path. A missing vendor dir defaults
// to "emp_mods".
func Load(path string) (Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return Manifest{}, fmt.Errorf("project: failed to parse %s: %w", path, err)
	}
	if m.Vendor.Dir == "" {
		m.Vendor.Dir = defaultVendorDir
	}
	return m, nil
}

// Write serializes m as TOML to path.
func Write(path string, m Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("project: cannot create %s: %w", path, err)
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	return enc.Encode(m)
}

// FindRoot walks up from dir looking for emp.toml, returning its
// directory. Returns "" if none is found before reaching the filesystem
// root.
func FindRoot(dir string) string {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(cur, "emp.toml")); err == nil {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}

// VendorDir returns the absolute emp_mods directory for a project root,
// honoring a manifest's configured vendor dir when present.
func VendorDir(root string, m *Manifest) string {
	dir := defaultVendorDir
	if m != nil && m.Vendor.Dir != "" {
		dir = m.Vendor.Dir
	}
	return filepath.Join(root, dir)
}
