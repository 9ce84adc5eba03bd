package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClient_GetMovie(t *testing.T) {
	// Mock TMDB API
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"overview": "A ticking-time-bomb insomniac...",
			"release_date": "1999-10-15",
			"poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
			"backdrop_path": null,
			"vote_average": 8.4,
			"runtime": 139,
			"imdb_id": "tt0137523",
			"genres": [{"id": 18, "name": "Drama"}]
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 1999, movie.Year())
	require.NotNil(t, movie.Runtime)
	assert.Equal(t, 139, *movie.Runtime)
	require.NotNil(t, movie.IMDBID)
	assert.Equal(t, "tt0137523", *movie.IMDBID)
	assert.Nil(t, movie.BackdropPath)
	assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}}, movie.Genres)
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movie, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, movie)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetMovie_Cached(t *testing.T) {
	var callCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		_ = json.NewEncoder(w).Encode(MovieDetails{Movie: Movie{ID: 550, Title: "Fight Club"}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	// First call hits API
	_, err := client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int32(1), callCount.Load())

	// Second call uses cache
	_, err = client.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, int32(1), callCount.Load(), "should use cache, not call API again")
}

func TestClient_GetMovie_ConcurrentCallsShareRequest(t *testing.T) {
	var callCount atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		<-release
		_ = json.NewEncoder(w).Encode(MovieDetails{Movie: Movie{ID: 603, Title: "The Matrix"}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	var wg sync.WaitGroup
	results := make([]*MovieDetails, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := client.GetMovie(context.Background(), 603)
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}

	require.Eventually(t, func() bool { return callCount.Load() == 1 }, time.Second, 5*time.Millisecond)
	// Give the other goroutines a chance to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), callCount.Load())
	for _, m := range results {
		require.NotNil(t, m)
		assert.Equal(t, "The Matrix", m.Title)
	}
}

func TestClient_Trending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/trending/movie/day", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 1, "title": "One", "genre_ids": [28, 12], "poster_path": "/one.jpg"},
				{"id": 2, "title": "Two", "genre_ids": [], "poster_path": null}
			],
			"total_pages": 1,
			"total_results": 2
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	list, err := client.Trending(context.Background(), WindowDay)
	require.NoError(t, err)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "One", list.Results[0].Title)
	assert.Equal(t, []int{28, 12}, list.Results[0].GenreIDs)
	assert.Nil(t, list.Results[1].PosterPath)
	assert.Equal(t, 2, list.TotalResults)
}

func TestClient_Trending_InvalidWindow(t *testing.T) {
	client := NewClient("test-key", WithBaseURL("http://127.0.0.1:0"))

	_, err := client.Trending(context.Background(), TimeWindow("month"))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "the matrix", q.Get("query"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "false", q.Get("include_adult"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		_, _ = w.Write([]byte(`{"page": 2, "results": [{"id": 603, "title": "The Matrix"}], "total_pages": 2, "total_results": 21}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	list, err := client.Search(context.Background(), "the matrix", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page)
	require.Len(t, list.Results, 1)
	assert.Equal(t, int64(603), list.Results[0].ID)
}

func TestClient_Search_DefaultsPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"page": 1, "results": []}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	list, err := client.Search(context.Background(), "nothing", 0)
	require.NoError(t, err)
	assert.Empty(t, list.Results)
}

func TestClient_APIErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL), WithRetry(3, time.Millisecond))

	_, err := client.Search(context.Background(), "x", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	var callCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callCount.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"page": 1, "results": [{"id": 1, "title": "Recovered"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRetry(3, time.Millisecond))

	list, err := client.Trending(context.Background(), WindowWeek)
	require.NoError(t, err)
	assert.Equal(t, "Recovered", list.Results[0].Title)
	assert.Equal(t, int32(3), callCount.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var callCount atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRetry(3, time.Millisecond))

	_, err := client.Trending(context.Background(), WindowWeek)
	require.Error(t, err)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestClient_TrailerKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/550/videos", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 550, "results": [
			{"key": "clip1", "site": "YouTube", "type": "Clip"},
			{"key": "vim1", "site": "Vimeo", "type": "Trailer"},
			{"key": "tease1", "site": "YouTube", "type": "Teaser"},
			{"key": "trail1", "site": "YouTube", "type": "Trailer"}
		]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	key, ok := client.TrailerKey(context.Background(), 550)
	require.True(t, ok)
	assert.Equal(t, "tease1", key)
}

func TestClient_TrailerKey_FailureIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRetry(1, 0))

	key, ok := client.TrailerKey(context.Background(), 550)
	assert.False(t, ok)
	assert.Empty(t, key)
}

func TestClient_ImageURLs(t *testing.T) {
	client := NewClient("test-key")

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", client.PosterURL(strPtr("/abc.jpg"), ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/abc.jpg", client.PosterURL(strPtr("/abc.jpg"), "w185"))
	assert.Equal(t, PosterPlaceholder, client.PosterURL(nil, ""))
	assert.Equal(t, PosterPlaceholder, client.PosterURL(strPtr(""), "w500"))

	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/bg.jpg", client.BackdropURL(strPtr("/bg.jpg"), ""))
	assert.Equal(t, BackdropPlaceholder, client.BackdropURL(nil, "w780"))

	custom := NewClient("test-key", WithImageBaseURL("https://cdn.example.com/img"))
	assert.Equal(t, "https://cdn.example.com/img/w342/p.jpg", custom.PosterURL(strPtr("/p.jpg"), "w342"))
}

func TestGenreNames(t *testing.T) {
	assert.Equal(t, []string{"Action", "Adventure", "Sci-Fi"}, GenreNames([]int{28, 12, 878, 18}))
	assert.Equal(t, []string{"Drama", "Unknown"}, GenreNames([]int{18, 1}))
	assert.Empty(t, GenreNames(nil))
}

func TestRankByTitle(t *testing.T) {
	movies := []Movie{
		{ID: 1, Title: "Matrix Reloaded"},
		{ID: 2, Title: "Zoolander"},
		{ID: 3, Title: "The Matrix"},
		{ID: 4, Title: "Die Matrix", OriginalTitle: "The Matrix"},
	}

	ranked := RankByTitle("the matrix", movies)
	require.Len(t, ranked, 4)
	// Exact matches first, stable on ties.
	assert.Equal(t, int64(3), ranked[0].ID)
	assert.Equal(t, int64(4), ranked[1].ID)
	assert.Equal(t, int64(2), ranked[3].ID)

	// Input untouched
	assert.Equal(t, int64(1), movies[0].ID)

	// Blank query keeps API order
	assert.Equal(t, movies, RankByTitle("  ", movies))
}

func TestMovieDetails_Summary(t *testing.T) {
	d := MovieDetails{
		Movie:  Movie{ID: 603, Title: "The Matrix"},
		Genres: []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
	}

	m := d.Summary()
	assert.Equal(t, int64(603), m.ID)
	assert.Equal(t, []int{28, 878}, m.GenreIDs)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, GenreNames(m.GenreIDs))
}
