package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/config"
	"github.com/vmunix/reelist/internal/events"
	"github.com/vmunix/reelist/internal/favorites"
	"github.com/vmunix/reelist/internal/kv"
	"github.com/vmunix/reelist/internal/logging"
	"github.com/vmunix/reelist/internal/search"
	"github.com/vmunix/reelist/internal/tmdb"
)

const retryDelay = 300 * time.Millisecond

// app is the wired dependency graph for one command invocation.
type app struct {
	cfg       *config.Config
	log       *logging.Logger
	db        *sql.DB          // nil with --memory
	eventLog  *events.EventLog // nil with --memory
	bus       *events.Bus
	tmdb      *tmdb.Client
	favorites *favorites.Store
	out       io.Writer
	json      bool
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}, cmd.ErrOrStderr())

	a := &app{
		cfg:  cfg,
		log:  log,
		out:  cmd.OutOrStdout(),
		json: opts.jsonOutput,
	}

	a.tmdb = tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithCacheTTL(cfg.TMDB.CacheTTL),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		tmdb.WithRetry(uint(cfg.TMDB.Retries), retryDelay),
		tmdb.WithLogger(log.Component("tmdb")),
	)

	var storage favorites.Storage
	if opts.memory {
		storage = kv.NewMemory()
	} else {
		db, err := kv.Open(cfg.Database.Path)
		if err != nil {
			_ = log.Close()
			return nil, fmt.Errorf("database: %w", err)
		}
		a.db = db
		a.eventLog = events.NewEventLog(db)
		storage = kv.NewSQLite(db)
	}

	a.bus = events.NewBus(a.eventLog, log.Component("events"))
	a.favorites = favorites.NewStore(storage, a.bus, log.Component("favorites"))

	log.Debug("app ready", "database", cfg.Database.Path, "memory", opts.memory)
	return a, nil
}

// orchestrator builds a search orchestrator from the [search] config.
func (a *app) orchestrator(debounce time.Duration) *search.Orchestrator {
	cfg := search.Config{
		Debounce:       a.cfg.Search.Debounce,
		Timeout:        a.cfg.Search.Timeout,
		TrendingWindow: tmdb.TimeWindow(a.cfg.Search.TrendingWindow),
	}
	if debounce > 0 {
		cfg.Debounce = debounce
	}
	return search.NewOrchestrator(a.tmdb, cfg,
		search.WithBus(a.bus),
		search.WithLogger(a.log.Component("search")),
	)
}

func (a *app) Close() error {
	var errs []error
	errs = append(errs, a.bus.Close())
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	errs = append(errs, a.log.Close())
	return errors.Join(errs...)
}

// loadConfig loads the config at path, or discovers one. With no config
// file at all, TMDB_API_KEY alone is enough to run on defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			key := os.Getenv("TMDB_API_KEY")
			if key == "" {
				return nil, fmt.Errorf("%w (run 'reelist init' or set TMDB_API_KEY)", err)
			}
			cfg := config.Default()
			cfg.TMDB.APIKey = key
			return cfg, nil
		}
		path = discovered
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
