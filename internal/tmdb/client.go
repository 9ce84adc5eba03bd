package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultCacheTTL     = 24 * time.Hour
	defaultAttempts     = 3
	defaultRetryDelay   = 300 * time.Millisecond
)

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	cache        *cache
	group        singleflight.Group
	attempts     uint
	retryDelay   time.Duration
	log          *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithImageBaseURL sets the image CDN prefix used by PosterURL and BackdropURL.
func WithImageBaseURL(url string) Option {
	return func(c *Client) {
		c.imageBaseURL = url
	}
}

// WithCacheTTL sets the details cache TTL. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry sets how many times a request is attempted and the initial
// backoff delay. Only 429, 5xx and transport errors are retried.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts == 0 {
			attempts = 1
		}
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:      newCache(defaultCacheTTL),
		attempts:   defaultAttempts,
		retryDelay: defaultRetryDelay,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trending fetches the trending movies for the given window.
func (c *Client) Trending(ctx context.Context, window TimeWindow) (*MovieList, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}

	var list MovieList
	if err := c.get(ctx, "/3/trending/movie/"+string(window), nil, &list); err != nil {
		return nil, fmt.Errorf("trending %s: %w", window, err)
	}
	return &list, nil
}

// Search searches movies by title. Adult titles are always excluded.
func (c *Client) Search(ctx context.Context, query string, page int) (*MovieList, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")

	var list MovieList
	if err := c.get(ctx, "/3/search/movie", params, &list); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return &list, nil
}

// GetMovie fetches movie details by TMDB ID.
// Concurrent calls for the same ID share one request.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*MovieDetails, error) {
	// Check cache first
	if movie, ok := c.cache.get(tmdbID); ok {
		return movie, nil
	}

	v, err, _ := c.group.Do(strconv.FormatInt(tmdbID, 10), func() (any, error) {
		var movie MovieDetails
		if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, &movie); err != nil {
			return nil, err
		}
		c.cache.set(tmdbID, &movie)
		return &movie, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", tmdbID, err)
	}
	return v.(*MovieDetails), nil
}

// Videos fetches trailers, teasers and clips for a movie.
func (c *Client) Videos(ctx context.Context, tmdbID int64) (*VideoList, error) {
	var list VideoList
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/videos", tmdbID), nil, &list); err != nil {
		return nil, fmt.Errorf("videos %d: %w", tmdbID, err)
	}
	return &list, nil
}

// TrailerKey returns the YouTube key of the first trailer or teaser.
// Any failure is reported as not found.
func (c *Client) TrailerKey(ctx context.Context, tmdbID int64) (string, bool) {
	videos, err := c.Videos(ctx, tmdbID)
	if err != nil {
		c.log.Debug("trailer lookup failed", "tmdb_id", tmdbID, "error", err)
		return "", false
	}
	for _, v := range videos.Results {
		if v.Site == "YouTube" && (v.Type == "Trailer" || v.Type == "Teaser") && v.Key != "" {
			return v.Key, true
		}
	}
	return "", false
}

// get issues a GET against the API and decodes the JSON body into v,
// retrying transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	return retry.Do(
		func() error { return c.fetch(ctx, endpoint, v) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug("retrying TMDB request", "path", path, "attempt", n+1, "error", err)
		}),
	)
}

func (c *Client) fetch(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	// Transport failures are worth another attempt; decode failures are not.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
