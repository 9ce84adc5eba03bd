package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/reelist/internal/tmdb"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

// movieInfo is the JSON shape of `reelist info`.
type movieInfo struct {
	*tmdb.MovieDetails
	PosterURL   string `json:"poster_url"`
	BackdropURL string `json:"backdrop_url"`
	TrailerURL  string `json:"trailer_url,omitempty"`
	Favorite    bool   `json:"favorite"`
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <tmdb-id>",
		Short: "Show movie details",
		Long: `Show movie details, artwork links and the trailer.

Examples:
  reelist info 603`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var (
				details    *tmdb.MovieDetails
				trailerKey string
				hasTrailer bool
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				d, err := a.tmdb.GetMovie(ctx, id)
				if err != nil {
					return err
				}
				details = d
				return nil
			})
			g.Go(func() error {
				trailerKey, hasTrailer = a.tmdb.TrailerKey(ctx, id)
				return nil
			})
			if err := g.Wait(); err != nil {
				if errors.Is(err, tmdb.ErrNotFound) {
					return fmt.Errorf("movie %d not found", id)
				}
				return fmt.Errorf("fetch movie %d: %w", id, err)
			}

			info := movieInfo{
				MovieDetails: details,
				PosterURL:    a.tmdb.PosterURL(details.PosterPath, ""),
				BackdropURL:  a.tmdb.BackdropURL(details.BackdropPath, ""),
				Favorite:     a.favorites.Contains(cmd.Context(), id),
			}
			if hasTrailer {
				info.TrailerURL = youtubeWatchURL + trailerKey
			}

			if a.json {
				printJSON(a.out, info)
				return nil
			}

			printMovieInfo(a, info)
			return nil
		},
	}
}

func printMovieInfo(a *app, info movieInfo) {
	d := info.MovieDetails
	w := a.out

	title := d.Title
	if y := d.Year(); y > 0 {
		title = fmt.Sprintf("%s (%d)", title, y)
	}
	fmt.Fprintln(w, title)
	if d.Tagline != "" {
		fmt.Fprintf(w, "  %q\n", d.Tagline)
	}
	fmt.Fprintln(w)

	summary := d.Summary()
	fmt.Fprintf(w, "  Rating:    %s (%d votes)\n", formatRating(d.VoteAverage), d.VoteCount)
	fmt.Fprintf(w, "  Runtime:   %s\n", formatRuntime(d.Runtime))
	fmt.Fprintf(w, "  Genres:    %s\n", strings.Join(tmdb.GenreNames(summary.GenreIDs), ", "))
	if d.Status != "" {
		fmt.Fprintf(w, "  Status:    %s\n", d.Status)
	}
	if d.IMDBID != nil && *d.IMDBID != "" {
		fmt.Fprintf(w, "  IMDb:      https://www.imdb.com/title/%s/\n", *d.IMDBID)
	}
	fmt.Fprintf(w, "  Poster:    %s\n", info.PosterURL)
	fmt.Fprintf(w, "  Backdrop:  %s\n", info.BackdropURL)
	if info.TrailerURL != "" {
		fmt.Fprintf(w, "  Trailer:   %s\n", info.TrailerURL)
	} else {
		fmt.Fprintln(w, "  Trailer:   none")
	}
	fav := "no"
	if info.Favorite {
		fav = "yes ★"
	}
	fmt.Fprintf(w, "  Favorite:  %s\n", fav)

	if d.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", d.Overview)
	}
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid TMDB id %q", s)
	}
	return id, nil
}
