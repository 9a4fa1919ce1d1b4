// Package installer maintains the local installed-package directory and
// drives the sequential download+extract loop for an install plan.
package installer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/magland/mip/pkg/errors"
)

// Meta is the per-package metadata file (mip.json) shipped inside an
// artifact. Both fields are optional.
type Meta struct {
	Dependencies   []string `json:"dependencies"`
	ExposedSymbols []string `json:"exposed_symbols"`
}

// Store is the local install state: one subdirectory per installed package
// under an explicit root. The root is always passed in by the caller, never
// discovered from a hidden global, so planning stays testable.
//
// A package counts as installed when its directory exists. The store never
// re-checks state mid-run on behalf of callers; readers snapshot it once
// before planning.
type Store struct {
	root string
}

// NewStore creates a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{root: dir}, nil
}

// Root returns the packages directory path.
func (s *Store) Root() string { return s.root }

// Dir returns the install directory for a package name.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// IsInstalled reports whether the package directory exists.
func (s *Store) IsInstalled(name string) bool {
	info, err := os.Stat(s.Dir(name))
	return err == nil && info.IsDir()
}

// List returns the sorted names of all installed packages.
func (s *Store) List() ([]string, error) {
	dirents, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, d := range dirents {
		if d.IsDir() {
			names = append(names, d.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Installed returns the install state as a set, snapshotted once.
func (s *Store) Installed() (map[string]bool, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

// Meta reads the mip.json metadata of an installed package.
// Returns ok=false if the package has no metadata file.
func (s *Store) Meta(name string) (*Meta, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(name), "mip.json"))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid mip.json in package %q", name)
	}
	return &m, true, nil
}

// Remove deletes an installed package directory.
// Returns a NOT_INSTALLED error if the package is not present.
func (s *Store) Remove(name string) error {
	if !s.IsInstalled(name) {
		return errors.New(errors.ErrCodeNotInstalled, "package %q is not installed", name)
	}
	return os.RemoveAll(s.Dir(name))
}
