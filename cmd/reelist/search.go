package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/search"
	"github.com/vmunix/reelist/internal/tmdb"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		page   int
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "search [flags] <query>...",
		Short: "Search movies by title",
		Long: `Search movies by title.

Examples:
  reelist search "The Matrix"
  reelist search --sort relevance matrix
  reelist search --page 2 star wars`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be blank")
			}
			if sortBy != "popularity" && sortBy != "relevance" {
				return fmt.Errorf("invalid --sort %q: must be popularity or relevance", sortBy)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Search.Timeout)
			defer cancel()

			list, err := a.tmdb.Search(ctx, query, page)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if sortBy == "relevance" {
				list.Results = tmdb.RankByTitle(query, list.Results)
			}

			if a.json {
				printJSON(a.out, list)
				return nil
			}

			if len(list.Results) == 0 {
				fmt.Fprintln(a.out, search.NoResultsMessage(query))
				return nil
			}

			fmt.Fprintf(a.out, "Found %d movies for %q (page %d of %d):\n\n",
				list.TotalResults, query, list.Page, max(list.TotalPages, 1))
			printMovies(a.out, list.Results, favoriteSet(ctx, a))
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Result page")
	cmd.Flags().StringVar(&sortBy, "sort", "popularity", "Order: popularity (as returned) or relevance (title similarity)")
	return cmd
}

// favoriteSet snapshots the favorites for marking table rows.
func favoriteSet(ctx context.Context, a *app) func(int64) bool {
	ids := make(map[int64]bool)
	for _, m := range a.favorites.All(ctx) {
		ids[m.ID] = true
	}
	return func(id int64) bool { return ids[id] }
}
