package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/matlab"
)

// setupCommand creates the setup command, refreshing the MATLAB-side
// integration. Install and uninstall do this automatically; setup exists
// for users who upgraded mip and want the latest mip.import() right away.
func (c *CLI) setupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Refresh the MATLAB integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dir, err := matlab.Setup(cfg.Home)
			if err != nil {
				return err
			}

			printSuccess("MATLAB integration updated at: %s", dir)
			fmt.Println()
			printInfo("Make sure '%s' is on your MATLAB path. In MATLAB, run:", dir)
			printDetail("%s", matlab.Instructions(dir))
			return nil
		},
	}
}
