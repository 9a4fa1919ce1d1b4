package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/magland/mip/pkg/errors"
	"github.com/magland/mip/pkg/manifest"
	"github.com/magland/mip/pkg/resolve"
)

// depsCommand creates the deps command, which shows a package's dependency
// graph as a text tree, DOT source, or a rendered image.
func (c *CLI) depsCommand() *cobra.Command {
	var (
		format  string
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "deps <package>",
		Short: "Show a package's dependency graph",
		Long: `Show the dependency graph of a manifest package.

Formats:
  tree  indented text tree (default)
  dot   Graphviz DOT source
  svg   rendered SVG (requires --output)
  png   rendered PNG (requires --output)`,
		Args: cobra.ExactArgs(1),
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

			// Resolving validates the subgraph (missing names, cycles)
			// before any rendering work.
			if _, err := resolve.Resolve(name, m); err != nil {
				return err
			}

			switch format {
			case "tree", "":
				return writeOut(output, []byte(depTree(name, m)))
			case "dot":
				return writeOut(output, []byte(depDOT(name, m)))
			case "svg", "png":
				if output == "" {
					return errors.New(errors.ErrCodeInvalidInput, "--output is required for %s format", format)
				}
				data, err := renderGraph(ctx, depDOT(name, m), graphviz.Format(format))
				if err != nil {
					return err
				}
				return writeOut(output, data)
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (tree, dot, svg, png)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format (tree, dot, svg, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the manifest cache")
	return cmd
}

// depTree renders the dependency graph reachable from root as an indented
// text tree. Names repeated deeper in the tree are not expanded again.
func depTree(root string, m *manifest.Manifest) string {
	var b strings.Builder
	seen := make(map[string]bool)

	var walk func(name string, depth int)
	walk = func(name string, depth int) {
		indent := strings.Repeat("  ", depth)
		entry, ok := m.Lookup(name)
		if !ok {
			fmt.Fprintf(&b, "%s%s (missing)\n", indent, name)
			return
		}
		if seen[name] {
			fmt.Fprintf(&b, "%s%s (*)\n", indent, name)
			return
		}
		seen[name] = true
		fmt.Fprintf(&b, "%s%s v%s\n", indent, name, entry.Version)
		for _, dep := range entry.Dependencies {
			walk(dep, depth+1)
		}
	}
	walk(root, 0)
	return b.String()
}

// depDOT converts the dependency subgraph reachable from root to Graphviz
// DOT format.
func depDOT(root string, m *manifest.Manifest) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	seen := make(map[string]bool)
	var walk func(name string)
	walk = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true

		entry, ok := m.Lookup(name)
		if !ok {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,dashed\"];\n", name)
			return
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, fmt.Sprintf("%s\nv%s", name, entry.Version))
		for _, dep := range entry.Dependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
			walk(dep)
		}
	}
	walk(root)

	buf.WriteString("}\n")
	return buf.String()
}

// renderGraph renders DOT source to the requested image format using Graphviz.
func renderGraph(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// writeOut writes data to path, or stdout when path is empty.
func writeOut(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	return nil
}
