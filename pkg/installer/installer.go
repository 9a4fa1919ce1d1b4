package installer

import (
	"context"
	"os"

	"github.com/magland/mip/pkg/manifest"
	"github.com/magland/mip/pkg/registry"
	"github.com/magland/mip/pkg/resolve"
)

// Options configures an Installer.
type Options struct {
	Refresh bool                 // Bypass the manifest cache
	Logger  func(string, ...any) // Progress callback (optional)
}

// withDefaults returns a copy of Options with zero values replaced.
func (o Options) withDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Run is a computed install plan ready to execute: the resolved order
// filtered against local state, with one concrete artifact per package.
type Run struct {
	Manifest *manifest.Manifest
	Plan     *resolve.Plan
	Actions  []resolve.Action
}

// Installer resolves a requested package against the repository manifest
// and installs the resulting plan sequentially.
//
// Execution is single-threaded: each package is downloaded and extracted to
// completion before the next begins, so a package can assume its
// dependencies are already materialized on disk. A failure aborts the
// remaining plan; packages installed earlier in the run stay installed.
type Installer struct {
	reg     *registry.Client
	store   *Store
	hostTag string
	opts    Options
}

// New creates an Installer targeting the given registry and local store.
// hostTag is the platform tag artifacts are matched against, normally
// [platform.DetectTag].
func New(reg *registry.Client, store *Store, hostTag string, opts Options) *Installer {
	return &Installer{reg: reg, store: store, hostTag: hostTag, opts: opts.withDefaults()}
}

// Plan fetches the manifest, resolves name's dependency graph, and filters
// the order against the local install state (snapshotted once, here). No
// filesystem mutation happens before this returns, so a resolution failure
// leaves local state untouched.
func (i *Installer) Plan(ctx context.Context, name string) (*Run, error) {
	m, err := i.reg.FetchManifest(ctx, i.opts.Refresh)
	if err != nil {
		return nil, err
	}

	order, err := resolve.Resolve(name, m)
	if err != nil {
		return nil, err
	}

	installed, err := i.store.Installed()
	if err != nil {
		return nil, err
	}
	plan := resolve.NewPlan(order, func(n string) bool { return installed[n] })

	actions, err := plan.Actions(m, i.hostTag)
	if err != nil {
		return nil, err
	}
	return &Run{Manifest: m, Plan: plan, Actions: actions}, nil
}

// Apply executes a plan: for each action in order, download the artifact,
// extract it into the package directory, and delete the archive.
// Fail-fast, no rollback.
func (i *Installer) Apply(ctx context.Context, run *Run) error {
	for _, a := range run.Actions {
		if err := i.installOne(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (i *Installer) installOne(ctx context.Context, a resolve.Action) error {
	i.opts.Logger("Downloading %s v%s...", a.Name, a.Version)
	archive, err := i.reg.Download(ctx, a.Artifact.Filename, i.store.Root())
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	i.opts.Logger("Extracting %s...", a.Name)
	if err := ExtractZip(archive, i.store.Dir(a.Name)); err != nil {
		return err
	}

	i.opts.Logger("Successfully installed '%s'", a.Name)
	return nil
}
