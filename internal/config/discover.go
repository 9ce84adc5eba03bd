package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is where `reelist init` writes when given no path:
// $XDG_CONFIG_HOME/reelist/config.toml, falling back to ~/.config.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "reelist", "config.toml")
}

// Discover returns the first config file that exists, checking in order:
//  1. $REELIST_CONFIG, which must exist when set
//  2. ./config.toml
//  3. DefaultPath()
//  4. /etc/reelist/config.toml
//
// When nothing is found the CLI can still run from TMDB_API_KEY alone.
func Discover() (string, error) {
	if envPath := os.Getenv("REELIST_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("REELIST_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	candidates := []string{
		"./config.toml",
		DefaultPath(),
		"/etc/reelist/config.toml",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(candidates, ", "))
}
