package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the ranking and image cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached rankings and rendered images",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, _, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			count, err := clearer.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory, a Redis
// namespace or "disabled".
func (c *CLI) cacheLocation() string {
	switch c.cfg.Cache.Backend {
	case config.CacheNone:
		return "disabled"
	case config.CacheRedis:
		return fmt.Sprintf("redis namespace %q", c.cfg.Cache.Namespace)
	default:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			return "unavailable: " + err.Error()
		}
		return dir
	}
}
