package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/errors"
	"github.com/magland/mip/pkg/platform"
)

// infoCommand creates the info command showing manifest details for a package.
func (c *CLI) infoCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show manifest details for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			e, err := newEnv(ctx, refresh)
			if err != nil {
				return err
			}
			defer e.cache.Close()

			m, err := e.registry.FetchManifest(ctx, refresh)
			if err != nil {
				return err
			}

			entry, ok := m.Lookup(name)
			if !ok {
				return errors.New(errors.ErrCodePackageNotFound, "package %q not found in repository", name)
			}

			hostTag := platform.DetectTag()

			printInfo("%s %s", StyleHighlight.Render(entry.Name), StyleValue.Render("v"+entry.Version))
			if len(entry.Dependencies) > 0 {
				printDetail("dependencies: %s", strings.Join(entry.Dependencies, ", "))
			} else {
				printDetail("dependencies: none")
			}
			printDetail("platforms: %s", strings.Join(platform.Tags(entry.Variants), ", "))

			if v, ok := platform.SelectBestVariant(entry.Variants, hostTag); ok {
				printDetail("artifact for %s: %s (%s)", hostTag, v.Filename, v.PlatformTag)
			} else {
				printWarning("No variant compatible with this platform (%s)", hostTag)
			}

			if e.store.IsInstalled(name) {
				printSuccess("Installed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the manifest cache")
	return cmd
}
