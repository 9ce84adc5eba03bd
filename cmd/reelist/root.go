package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	jsonOutput bool
	memory     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reelist",
		Short: "Browse, search and bookmark movies from TMDB",
		Long: `reelist - browse, search and bookmark movies from TMDB

Trending and search results come from The Movie Database.
Favorites are kept in a local sqlite database.

Run 'reelist init' to write a starter config.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: discovered)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	cmd.PersistentFlags().BoolVar(&opts.memory, "memory", false, "Keep favorites in memory only; nothing is saved")

	cmd.Version = version
	cmd.SetVersionTemplate("reelist {{.Version}}\n")

	cmd.AddCommand(
		newTrendingCmd(opts),
		newSearchCmd(opts),
		newExploreCmd(opts),
		newInfoCmd(opts),
		newFavCmd(opts),
		newHistoryCmd(opts),
		newConfigCmd(opts),
		newInitCmd(),
	)
	return cmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
