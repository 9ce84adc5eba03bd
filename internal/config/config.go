// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	TMDB     TMDBConfig     `toml:"tmdb"`
	Database DatabaseConfig `toml:"database"`
	Search   SearchConfig   `toml:"search"`
	Log      LogConfig      `toml:"log"`
}

type TMDBConfig struct {
	APIKey       string        `toml:"api_key"`
	BaseURL      string        `toml:"base_url"`
	ImageBaseURL string        `toml:"image_base_url"`
	Timeout      time.Duration `toml:"timeout"`
	CacheTTL     time.Duration `toml:"cache_ttl"` // 0 disables the details cache
	Retries      int           `toml:"retries"`   // attempts per request, including the first
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type SearchConfig struct {
	Debounce       time.Duration `toml:"debounce"`
	Timeout        time.Duration `toml:"timeout"`
	TrendingWindow string        `toml:"trending_window"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Load reads, parses and validates the configuration file.
// Unresolved environment variables and validation failures are returned
// together as a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults(md)
	return &cfg, missing, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults(toml.MetaData{})
	return &cfg
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org"
	}
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p"
	}
	if c.TMDB.Timeout == 0 {
		c.TMDB.Timeout = 10 * time.Second
	}
	// An explicit cache_ttl = "0s" turns the cache off.
	if c.TMDB.CacheTTL == 0 && !md.IsDefined("tmdb", "cache_ttl") {
		c.TMDB.CacheTTL = 24 * time.Hour
	}
	if c.TMDB.Retries == 0 {
		c.TMDB.Retries = 3
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDataPath()
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 600 * time.Millisecond
	}
	if c.Search.Timeout == 0 {
		c.Search.Timeout = 10 * time.Second
	}
	if c.Search.TrendingWindow == "" {
		c.Search.TrendingWindow = "day"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// DefaultDataPath returns the XDG-compliant default database path.
func DefaultDataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./data/reelist.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "reelist", "reelist.db")
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references with their values.
// Unset variables, and empty ones referenced with :?, are left in place and
// reported in missing. Lines starting with # are copied unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	expand := func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, expand)
	}

	return strings.Join(lines, ""), missing
}
