// Package resolve computes installation order from a package manifest.
//
// Resolution is a depth-first walk of the dependency graph that produces a
// linear, deduplicated install order with dependencies strictly before
// dependents. Planning then filters that order against the local install
// state. Both operations are pure functions of their inputs, so they can be
// tested without any network or filesystem access.
package resolve

import (
	"fmt"
	"strings"

	"github.com/magland/mip/pkg/manifest"
)

// CycleError reports a circular dependency reachable from the requested
// package. Path holds the full chain, ending with the repeated name.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// NotFoundError reports a package name with no manifest entry.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package %q not found in repository", e.Name)
}

// Resolve returns the install order for name and its transitive
// dependencies: each reachable package exactly once, dependencies before
// dependents. The ordering is deterministic, fixed by the manifest's
// dependency-list order (first dependency's subtree is emitted completely
// before the second begins).
//
// Fails with *CycleError if a cycle is reachable from name, or
// *NotFoundError if name or any reachable dependency has no manifest entry.
func Resolve(name string, m *manifest.Manifest) ([]string, error) {
	visited := make(map[string]bool)
	return walk(name, m, visited, nil)
}

// walk performs the DFS. Each recursive call receives its own copy of the
// ancestor path; a shared mutable stack would make sibling subtrees detect
// false cycles against abandoned branches.
func walk(name string, m *manifest.Manifest, visited map[string]bool, path []string) ([]string, error) {
	for _, ancestor := range path {
		if ancestor == name {
			chain := append(append([]string{}, path...), name)
			return nil, &CycleError{Path: chain}
		}
	}

	if visited[name] {
		return nil, nil
	}

	entry, ok := m.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	visited[name] = true
	branch := append(append([]string{}, path...), name)

	var order []string
	for _, dep := range entry.Dependencies {
		sub, err := walk(dep, m, visited, branch)
		if err != nil {
			return nil, err
		}
		order = append(order, sub...)
	}
	return append(order, name), nil
}
