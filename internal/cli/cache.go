package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command. The only thing mip
// caches is the manifest fetch; these subcommands operate on the file
// backend's directory. Redis-backed entries expire through their own TTLs.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the manifest cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It removes the
// sharded entry files the file cache keeps under the cache directory, so
// the next command refetches packages.json.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop cached manifest fetches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			entries := 0
			var freed int64
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() || !strings.HasSuffix(path, ".json") {
					return nil
				}
				info, statErr := d.Info()
				if rmErr := os.Remove(path); rmErr != nil {
					printError("Failed to remove %s: %v", path, rmErr)
					return nil
				}
				entries++
				if statErr == nil {
					freed += info.Size()
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Drop the shard subdirectories the removals emptied.
			if dirents, err := os.ReadDir(dir); err == nil {
				for _, d := range dirents {
					if d.IsDir() {
						os.Remove(filepath.Join(dir, d.Name()))
					}
				}
			}

			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Dropped %d cached manifest fetch(es), %.1f KB", entries, float64(freed)/1024)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand, printing where the
// configured backend keeps its entries.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the manifest cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			switch cfg.CacheBackend {
			case "none":
				printInfo("Caching is disabled (cache_backend = \"none\")")
			case "redis":
				fmt.Println(cfg.RedisAddr)
			default:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Println(dir)
			}
			return nil
		},
	}
}
