package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "test [path]",
			Short: "Validate configuration file",
			Long:  "Validates config.toml syntax, required fields, and environment variable substitution without calling TMDB.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := opts.configPath
				if len(args) > 0 {
					path = args[0]
				}
				if path == "" {
					discovered, err := config.Discover()
					if err != nil {
						return err
					}
					path = discovered
				}
				return runConfigTest(cmd.OutOrStdout(), path)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file that would be used",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if opts.configPath != "" {
					fmt.Fprintln(cmd.OutOrStdout(), opts.configPath)
					return nil
				}
				path, err := config.Discover()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

func runConfigTest(w io.Writer, path string) error {
	fmt.Fprintf(w, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	cache := cfg.TMDB.CacheTTL.String()
	if cfg.TMDB.CacheTTL == 0 {
		cache = "off"
	}
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "console only"
	}

	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  TMDB:      %s (timeout %s, %d attempts, cache %s)\n",
		cfg.TMDB.BaseURL, cfg.TMDB.Timeout, cfg.TMDB.Retries, cache)
	fmt.Fprintf(w, "  API key:   %s\n", maskKey(cfg.TMDB.APIKey))
	fmt.Fprintf(w, "  Database:  %s\n", cfg.Database.Path)
	fmt.Fprintf(w, "  Search:    debounce %s, timeout %s, trending %s\n",
		cfg.Search.Debounce, cfg.Search.Timeout, cfg.Search.TrendingWindow)
	fmt.Fprintf(w, "  Log:       %s/%s (%s)\n", cfg.Log.Level, cfg.Log.Format, logFile)
}

// maskKey shows only the last four characters of a secret.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
