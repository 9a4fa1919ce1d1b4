package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/installer"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := installer.NewStore(cfg.PackagesDir())
			if err != nil {
				return err
			}

			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No packages installed yet")
				return nil
			}

			printInfo("Installed packages:")
			for _, name := range names {
				if long {
					printDetail("- %s%s", name, metaSummary(store, name))
				} else {
					printDetail("- %s", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show dependencies from each package's mip.json")
	return cmd
}

func metaSummary(store *installer.Store, name string) string {
	meta, ok, err := store.Meta(name)
	if err != nil || !ok || len(meta.Dependencies) == 0 {
		return ""
	}
	return " (depends on: " + strings.Join(meta.Dependencies, ", ") + ")"
}
