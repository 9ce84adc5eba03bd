package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/tmdb"
)

func newTrendingCmd(opts *rootOptions) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending movies",
		Long: `Show trending movies.

Examples:
  reelist trending
  reelist trending --window week`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			w := tmdb.TimeWindow(window)
			if window == "" {
				w = tmdb.TimeWindow(a.cfg.Search.TrendingWindow)
			}

			list, err := a.tmdb.Trending(cmd.Context(), w)
			if err != nil {
				return fmt.Errorf("trending failed: %w", err)
			}

			if a.json {
				printJSON(a.out, list)
				return nil
			}

			if len(list.Results) == 0 {
				fmt.Fprintln(a.out, "No trending movies")
				return nil
			}

			label := "today"
			if w == tmdb.WindowWeek {
				label = "this week"
			}
			fmt.Fprintf(a.out, "Trending %s (%d):\n\n", label, len(list.Results))
			printMovies(a.out, list.Results, favoriteSet(cmd.Context(), a))
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "", "Time window: day or week (default from config)")
	return cmd
}
