package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/platform"
)

// platformCommand creates the platform command, printing the detected
// platform tag for this machine.
func (c *CLI) platformCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the platform tag for this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(platform.DetectTag())
			return nil
		},
	}
}
