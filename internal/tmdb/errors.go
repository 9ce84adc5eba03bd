package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a movie doesn't exist in TMDB.
	ErrNotFound = errors.New("movie not found")

	// ErrAPI matches every non-2xx response other than 404.
	ErrAPI = errors.New("TMDB API error")

	// ErrInvalidWindow is returned for a trending window other than day or week.
	ErrInvalidWindow = errors.New("invalid trending window")
)

// APIError carries the HTTP status of a failed request.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error: %s", e.Status)
}

func (e *APIError) Unwrap() error { return ErrAPI }

// Temporary reports whether the request is worth retrying.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
