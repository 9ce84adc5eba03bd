package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

var validWindows = map[string]bool{
	"day": true, "week": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// TMDB validation
	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if c.TMDB.BaseURL != "" {
		if u, err := url.Parse(c.TMDB.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an absolute URL, got %q", c.TMDB.BaseURL))
		}
	}
	if c.TMDB.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must not be negative, got %s", c.TMDB.Timeout))
	}
	if c.TMDB.CacheTTL < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.cache_ttl: must not be negative, got %s", c.TMDB.CacheTTL))
	}
	if c.TMDB.Retries < 1 || c.TMDB.Retries > 10 {
		errs = append(errs, fmt.Sprintf("tmdb.retries: must be between 1 and 10, got %d", c.TMDB.Retries))
	}

	// Search validation
	if c.Search.Debounce < 0 {
		errs = append(errs, fmt.Sprintf("search.debounce: must not be negative, got %s", c.Search.Debounce))
	}
	if c.Search.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("search.timeout: must not be negative, got %s", c.Search.Timeout))
	}
	if !validWindows[c.Search.TrendingWindow] {
		errs = append(errs, fmt.Sprintf("search.trending_window: must be day or week; got %q", c.Search.TrendingWindow))
	}

	// Log validation
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log: max_size_mb, max_backups and max_age_days must not be negative")
	}

	return errs
}
