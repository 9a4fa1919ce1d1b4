// Package cli implements the mip command-line interface.
//
// mip is a package manager for a MATLAB package ecosystem: it resolves a
// requested package against the remote manifest, walks the dependency
// graph, and downloads and extracts .mhl archives into a local package
// directory.
//
// # Commands
//
//   - install: Resolve and install a package with its dependencies
//   - uninstall: Remove an installed package (interactive confirmation)
//   - list: List installed packages
//   - info: Show manifest details for a package
//   - deps: Show or render a package's dependency graph
//   - platform: Print the detected platform tag
//   - setup: Refresh the MATLAB integration
//   - cache: Manage the manifest cache
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/buildinfo"
	"github.com/magland/mip/pkg/cache"
	"github.com/magland/mip/pkg/installer"
	"github.com/magland/mip/pkg/registry"
)

// appName is the application name used for directories and display.
const appName = "mip"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "mip",
		Short:        "mip installs MATLAB packages from the mip repository",
		Long:         `mip is a package manager for MATLAB packages. It resolves dependencies against the remote package manifest and installs platform-matched .mhl archives into your local package directory.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.installCommand())
	root.AddCommand(c.uninstallCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.platformCommand())
	root.AddCommand(c.setupCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// env bundles the collaborators a command needs, built from config.
type env struct {
	cfg      *Config
	registry *registry.Client
	store    *installer.Store
	cache    cache.Cache
}

// newEnv loads config and constructs the registry client and local store.
// noCache forces the null cache backend regardless of config.
func newEnv(ctx context.Context, noCache bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	ttl, err := cfg.ManifestTTL()
	if err != nil {
		return nil, err
	}

	backend := newCacheBackend(ctx, cfg, noCache)

	store, err := installer.NewStore(cfg.PackagesDir())
	if err != nil {
		return nil, err
	}

	reg := registry.NewClient(cfg.RegistryURL, registry.Options{
		Cache:    backend,
		CacheTTL: ttl,
		Attempts: cfg.HTTPAttempts,
	})

	return &env{cfg: cfg, registry: reg, store: store, cache: backend}, nil
}

// newCacheBackend selects the cache backend from config, degrading to the
// null cache when the preferred backend is unavailable.
func newCacheBackend(ctx context.Context, cfg *Config, noCache bool) cache.Cache {
	if noCache || cfg.CacheBackend == "none" {
		return cache.NewNullCache()
	}
	if cfg.CacheBackend == "redis" && cfg.RedisAddr != "" {
		if c, err := cache.NewRedisCache(ctx, cfg.RedisAddr, appName+":"); err == nil {
			return c
		}
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}
