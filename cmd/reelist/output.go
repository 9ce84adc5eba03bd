package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vmunix/reelist/internal/tmdb"
)

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// printMovies renders a numbered movie table. Favorites get a star.
func printMovies(w io.Writer, movies []tmdb.Movie, favorite func(int64) bool) {
	fmt.Fprintf(w, "  # │   │ %-8s │ %-40s │ %4s │ %6s │ %s\n", "ID", "TITLE", "YEAR", "RATING", "GENRES")
	fmt.Fprintln(w, "────┼───┼──────────┼──────────────────────────────────────────┼──────┼────────┼────────────────────")

	for i, m := range movies {
		star := " "
		if favorite != nil && favorite(m.ID) {
			star = "★"
		}
		year := "-"
		if y := m.Year(); y > 0 {
			year = fmt.Sprintf("%d", y)
		}
		fmt.Fprintf(w, " %2d │ %s │ %-8d │ %-40s │ %4s │ %6s │ %s\n",
			i+1, star, m.ID, truncate(m.Title, 40), year, formatRating(m.VoteAverage),
			strings.Join(tmdb.GenreNames(m.GenreIDs), ", "))
	}
}

// truncate shortens s to n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func formatRating(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatRuntime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return "-"
	}
	h, m := *minutes/60, *minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func formatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	ago := now.Sub(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		days := int(ago.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}
