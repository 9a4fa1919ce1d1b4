package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/installer"
	"github.com/magland/mip/pkg/matlab"
	"github.com/magland/mip/pkg/platform"
)

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "install <package>",
		Short: "Install a package and its dependencies",
		Long: `Install a package from the mip repository.

Dependencies are resolved from the remote manifest and installed first, in
dependency order. Packages already present in the local package directory
are skipped. When a package publishes several platform variants, the one
matching this machine is selected.

Examples:
  mip install spikeforest
  mip install spikeforest --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInstall(cmd, args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the manifest cache")
	return cmd
}

func (c *CLI) runInstall(cmd *cobra.Command, name string, refresh bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	e, err := newEnv(ctx, refresh)
	if err != nil {
		return err
	}
	defer e.cache.Close()

	// Keep the MATLAB-side integration current, as the original tooling
	// does on every install.
	if _, err := matlab.Setup(e.cfg.Home); err != nil {
		printWarning("Failed to update MATLAB integration: %v", err)
	}

	hostTag := platform.DetectTag()
	logger.Debugf("host platform: %s", hostTag)

	inst := installer.New(e.registry, e.store, hostTag, installer.Options{
		Refresh: refresh,
		Logger:  func(format string, args ...any) { printInfo(format, args...) },
	})

	logger.Info("Fetching package manifest...")
	logger.Infof("Resolving dependencies for '%s'...", name)

	spin := newSpinner(ctx, "resolving "+name)
	spin.Start()
	run, err := inst.Plan(ctx, name)
	spin.Stop()
	if err != nil {
		return err
	}

	for _, skipped := range run.Plan.Skipped {
		printInfo("Package '%s' is already installed", skipped)
	}
	if run.Plan.Empty() {
		printSuccess("All packages already installed")
		return nil
	}

	if len(run.Actions) > 1 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Installation plan:"))
		for _, a := range run.Actions {
			printDetail("- %s v%s (%s)", a.Name, a.Version, a.Artifact.PlatformTag)
		}
		fmt.Println()
	}

	if err := inst.Apply(ctx, run); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Installed %d package(s)", len(run.Actions)))
	printSuccess("Successfully installed %d package(s)", len(run.Actions))
	return nil
}
