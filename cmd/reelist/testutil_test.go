package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelist/internal/tmdb"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

var (
	matrix = tmdb.Movie{
		ID: 603, Title: "The Matrix", OriginalTitle: "The Matrix",
		ReleaseDate: "1999-03-30", VoteAverage: 8.2, VoteCount: 25000,
		PosterPath: strPtr("/matrix.jpg"), GenreIDs: []int{28, 878},
	}
	reloaded = tmdb.Movie{
		ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15",
		VoteAverage: 7.0, GenreIDs: []int{28, 878},
	}
	heat = tmdb.Movie{
		ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9, GenreIDs: []int{80},
	}
)

// fakeTMDB serves the handful of endpoints the CLI uses.
type fakeTMDB struct {
	*httptest.Server
	searches atomic.Int32
}

func newFakeTMDB(t *testing.T) *fakeTMDB {
	t.Helper()
	f := &fakeTMDB{}

	mux := http.NewServeMux()
	mux.HandleFunc("/3/trending/movie/{window}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("window") == "week" {
			writeJSON(t, w, listOf(heat))
			return
		}
		writeJSON(t, w, listOf(matrix, heat))
	})
	mux.HandleFunc("/3/search/movie", func(w http.ResponseWriter, r *http.Request) {
		f.searches.Add(1)
		q := strings.ToLower(r.URL.Query().Get("query"))
		switch {
		case q == "boom":
			w.WriteHeader(http.StatusBadRequest)
		case strings.Contains(q, "matrix"):
			writeJSON(t, w, listOf(reloaded, matrix))
		default:
			writeJSON(t, w, listOf())
		}
	})
	mux.HandleFunc("/3/movie/603", func(w http.ResponseWriter, r *http.Request) {
		d := tmdb.MovieDetails{
			Movie:   matrix,
			Genres:  []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
			Runtime: intPtr(136),
			IMDBID:  strPtr("tt0133093"),
			Tagline: "Welcome to the Real World.",
			Status:  "Released",
		}
		d.GenreIDs = nil
		writeJSON(t, w, d)
	})
	mux.HandleFunc("/3/movie/603/videos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, tmdb.VideoList{ID: 603, Results: []tmdb.Video{
			{Key: "clip1", Site: "YouTube", Type: "Clip"},
			{Key: "vKQi3bBA1y8", Site: "YouTube", Type: "Trailer"},
		}})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func listOf(movies ...tmdb.Movie) tmdb.MovieList {
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	return tmdb.MovieList{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// writeTestConfig writes a config pointing at srv with a temp database.
func writeTestConfig(t *testing.T, srv *fakeTMDB) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf(`
[tmdb]
api_key = "test-key"
base_url = %q
image_base_url = "https://img.test/t/p"
retries = 1

[database]
path = %q

[search]
debounce = "20ms"
timeout = "2s"

[log]
level = "error"
`, srv.URL, filepath.Join(dir, "reelist.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
