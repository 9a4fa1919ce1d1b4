// Package manifest models the package repository catalog.
//
// A manifest is the full list of publishable packages and their metadata,
// served as a single JSON document:
//
//	{"packages": [{"name": ..., "version": ..., "dependencies": [...], "filename": ...}, ...]}
//
// The simplest producers publish one artifact per entry via the "filename"
// field. Producers that build platform-specific artifacts add a
// "platform_tag" per entry, or a full "variants" list. All three shapes
// normalize to a [PackageEntry] with one or more [Variant] values.
//
// A parsed Manifest is immutable for the duration of a resolution.
package manifest

import (
	"encoding/json"

	"github.com/magland/mip/pkg/errors"
)

// TagAny marks an artifact that works on every platform.
const TagAny = "any"

// Variant is one platform-specific build artifact of a package.
type Variant struct {
	PlatformTag string `json:"platform_tag"` // Platform tag (e.g., "linux_x86_64", "any")
	Filename    string `json:"filename"`     // Artifact filename in the repository
}

// PackageEntry describes one package in the manifest.
//
// Dependencies are package names and may reference names that have no
// entry of their own; the resolver reports those as not found.
type PackageEntry struct {
	Name         string    // Unique package name
	Version      string    // Version string (no ordering semantics)
	Dependencies []string  // Direct dependency names, in declared order
	Variants     []Variant // Build artifacts, in declared order (order encodes preference)
}

// Manifest is the parsed package catalog, keyed by unique package name.
type Manifest struct {
	entries map[string]*PackageEntry
	order   []string
}

// wireEntry is the JSON shape of a single manifest entry.
type wireEntry struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Dependencies []string  `json:"dependencies"`
	Filename     string    `json:"filename"`
	PlatformTag  string    `json:"platform_tag"`
	Variants     []Variant `json:"variants"`
}

type wireManifest struct {
	Packages []wireEntry `json:"packages"`
}

// Parse decodes manifest JSON bytes into a Manifest.
//
// Entries with a "variants" list use it as-is; entries with only a
// "filename" become a single variant whose platform tag defaults to "any".
// Returns an INVALID_MANIFEST error for malformed JSON, entries without a
// name, entries without any artifact, or duplicate package names.
func Parse(data []byte) (*Manifest, error) {
	var wire wireManifest
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "manifest is not valid JSON")
	}

	m := &Manifest{entries: make(map[string]*PackageEntry, len(wire.Packages))}
	for _, w := range wire.Packages {
		if w.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest entry without a name")
		}
		if _, ok := m.entries[w.Name]; ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "duplicate package %q in manifest", w.Name)
		}

		entry := &PackageEntry{
			Name:         w.Name,
			Version:      w.Version,
			Dependencies: w.Dependencies,
			Variants:     w.Variants,
		}
		if len(entry.Variants) == 0 {
			if w.Filename == "" {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "package %q has no artifact", w.Name)
			}
			tag := w.PlatformTag
			if tag == "" {
				tag = TagAny
			}
			entry.Variants = []Variant{{PlatformTag: tag, Filename: w.Filename}}
		}
		for _, v := range entry.Variants {
			if v.Filename == "" {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "package %q has a variant without a filename", w.Name)
			}
		}

		m.entries[w.Name] = entry
		m.order = append(m.order, w.Name)
	}
	return m, nil
}

// Lookup returns the entry for name, or ok=false if the manifest has none.
func (m *Manifest) Lookup(name string) (*PackageEntry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Names returns package names in manifest declaration order.
func (m *Manifest) Names() []string {
	return m.order
}

// Len returns the number of packages in the manifest.
func (m *Manifest) Len() int {
	return len(m.entries)
}
