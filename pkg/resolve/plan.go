package resolve

import (
	"fmt"

	"github.com/magland/mip/pkg/manifest"
	"github.com/magland/mip/pkg/platform"
)

// NoCompatibleVariantError reports a planned package with no artifact
// compatible with the host platform.
type NoCompatibleVariantError struct {
	Name    string
	HostTag string
}

// Error implements the error interface.
func (e *NoCompatibleVariantError) Error() string {
	return fmt.Sprintf("package %q has no variant compatible with platform %s", e.Name, e.HostTag)
}

// Plan is the ordered list of packages to install, dependencies first,
// excluding names already present locally.
type Plan struct {
	Install []string // Names to install, in install order
	Skipped []string // Names already installed, in resolved order
}

// Empty reports whether there is nothing to install.
func (p *Plan) Empty() bool {
	return len(p.Install) == 0
}

// NewPlan filters a resolved install order against the local install state,
// keeping only names for which installed returns false and preserving
// relative order. It is a pure filter: the local state is queried, never
// mutated, and an empty result is a valid "nothing to do" outcome.
func NewPlan(order []string, installed func(name string) bool) *Plan {
	p := &Plan{}
	for _, name := range order {
		if installed(name) {
			p.Skipped = append(p.Skipped, name)
		} else {
			p.Install = append(p.Install, name)
		}
	}
	return p
}

// Action is one install step: a package resolved to the concrete artifact
// variant to download for the host platform.
type Action struct {
	Name     string
	Version  string
	Artifact manifest.Variant
}

// Actions resolves every planned package to a concrete variant for hostTag.
//
// A package with no compatible variant is fatal (*NoCompatibleVariantError)
// and aborts the whole plan; the caller installs nothing. A name missing
// from the manifest cannot happen for plans built from a Resolve order, but
// is still reported as *NotFoundError.
func (p *Plan) Actions(m *manifest.Manifest, hostTag string) ([]Action, error) {
	actions := make([]Action, 0, len(p.Install))
	for _, name := range p.Install {
		entry, ok := m.Lookup(name)
		if !ok {
			return nil, &NotFoundError{Name: name}
		}
		variant, ok := platform.SelectBestVariant(entry.Variants, hostTag)
		if !ok {
			return nil, &NoCompatibleVariantError{Name: name, HostTag: hostTag}
		}
		actions = append(actions, Action{Name: name, Version: entry.Version, Artifact: variant})
	}
	return actions, nil
}
