package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waypoint/pkg/cache"
)

// cacheDir returns the render cache directory, honoring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// openCache returns the on-disk render cache, or a NullCache when disabled
// or when no cache directory is usable.
func openCache(cmd *cobra.Command, disabled bool) cache.Cache {
	if disabled {
		return cache.NullCache{}
	}
	logger := loggerFromContext(cmd.Context())
	dir, err := cacheDir()
	if err != nil {
		logger.Warn("render cache disabled", "error", err)
		return cache.NullCache{}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("render cache disabled", "dir", dir, "error", err)
		return cache.NullCache{}
	}
	return fc
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered diagram cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				p.info("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			p.success("Cleared %d cached diagrams", n)
			p.detail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.line(dir)
			return nil
		},
	}
}
