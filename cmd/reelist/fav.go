package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/favorites"
	"github.com/vmunix/reelist/internal/tmdb"
)

func newFavCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fav",
		Aliases: []string{"favorites"},
		Short:   "Manage favorite movies",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorites, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					movies := a.favorites.All(ctx)
					if a.json {
						printJSON(a.out, movies)
						return nil
					}
					if len(movies) == 0 {
						fmt.Fprintln(a.out, "No favorites yet")
						return nil
					}
					fmt.Fprintf(a.out, "Favorites (%d):\n\n", len(movies))
					printMovies(a.out, movies, nil)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <tmdb-id>",
			Short: "Add a movie to favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					movie, err := lookupMovie(ctx, a, args[0])
					if err != nil {
						return err
					}
					if err := a.favorites.Add(ctx, movie); err != nil {
						return favError(err)
					}
					return report(a, movie, true)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <tmdb-id>",
			Short: "Remove a movie from favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseMovieID(args[0])
				if err != nil {
					return err
				}
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					if err := a.favorites.Remove(ctx, id); err != nil {
						return favError(err)
					}
					return report(a, tmdb.Movie{ID: id}, false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <tmdb-id>",
			Short: "Add the movie if absent, remove it if present",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					movie, err := lookupMovie(ctx, a, args[0])
					if err != nil {
						return err
					}
					present, err := a.favorites.Toggle(ctx, movie)
					if err != nil {
						return favError(err)
					}
					return report(a, movie, present)
				})
			},
		},
		newFavClearCmd(opts),
	)
	return cmd
}

func newFavClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				n := a.favorites.Count(ctx)
				if n > 0 && !yes {
					return fmt.Errorf("refusing to clear %d favorites without --yes", n)
				}
				if err := a.favorites.Clear(ctx); err != nil {
					return favError(err)
				}
				if !a.json {
					fmt.Fprintf(a.out, "Cleared %d favorites\n", n)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing")
	return cmd
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *app) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(cmd.Context(), a)
}

// lookupMovie fetches the list-level record stored in favorites.
func lookupMovie(ctx context.Context, a *app, arg string) (tmdb.Movie, error) {
	id, err := parseMovieID(arg)
	if err != nil {
		return tmdb.Movie{}, err
	}
	details, err := a.tmdb.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return tmdb.Movie{}, fmt.Errorf("movie %d not found", id)
		}
		return tmdb.Movie{}, fmt.Errorf("fetch movie %d: %w", id, err)
	}
	return details.Summary(), nil
}

func report(a *app, movie tmdb.Movie, favorite bool) error {
	if a.json {
		printJSON(a.out, map[string]any{"id": movie.ID, "title": movie.Title, "favorite": favorite})
		return nil
	}

	name := movie.Title
	if name == "" {
		name = fmt.Sprintf("movie %d", movie.ID)
	}
	if favorite {
		fmt.Fprintf(a.out, "★ %s is a favorite\n", name)
	} else {
		fmt.Fprintf(a.out, "%s is not a favorite\n", name)
	}
	return nil
}

func favError(err error) error {
	if errors.Is(err, favorites.ErrStorageUnavailable) {
		return fmt.Errorf("favorites could not be saved: %w", err)
	}
	return err
}
