package cli

import (
	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/installer"
	"github.com/magland/mip/pkg/matlab"
)

// uninstallCommand creates the uninstall command.
//
// Planning (is the package installed, which directory goes away) is
// separated from the confirmation gate and the removal itself, so the
// decision logic stays free of user interaction.
func (c *CLI) uninstallCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "uninstall <package>",
		Short: "Remove an installed package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if _, err := matlab.Setup(cfg.Home); err != nil {
				printWarning("Failed to update MATLAB integration: %v", err)
			}

			store, err := installer.NewStore(cfg.PackagesDir())
			if err != nil {
				return err
			}

			if !store.IsInstalled(name) {
				printInfo("Package '%s' is not installed", name)
				return nil
			}

			if !yes && !confirm(cmd.InOrStdin(), "Are you sure you want to uninstall '"+name+"'?") {
				printInfo("Uninstallation cancelled")
				return nil
			}

			if err := store.Remove(name); err != nil {
				return err
			}

			printSuccess("Successfully uninstalled '%s'", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
