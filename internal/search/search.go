// Package search turns a stream of query edits into debounced catalog
// calls and delivers only the result of the most recent dispatch.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/reelist/internal/events"
	"github.com/vmunix/reelist/internal/tmdb"
)

//go:generate mockgen -destination=mocks/catalog.go -package=mocks github.com/vmunix/reelist/internal/search Catalog

// Catalog is the remote movie catalog.
type Catalog interface {
	Trending(ctx context.Context, window tmdb.TimeWindow) (*tmdb.MovieList, error)
	Search(ctx context.Context, query string, page int) (*tmdb.MovieList, error)
}

// Listener receives the outcome of each applied dispatch. Calls for one
// session never overlap.
type Listener interface {
	// OnResults replaces the displayed list. query is "" for the default listing.
	OnResults(query string, movies []tmdb.Movie)
	// OnEmpty follows OnResults when a search matched nothing.
	OnEmpty(query string)
	// OnError reports a failed dispatch. Displayed results stay as they were.
	OnError(query string, err error)
}

// Config controls session timing.
type Config struct {
	Debounce       time.Duration   // quiet period before a search fires
	Timeout        time.Duration   // deadline for each catalog call
	TrendingWindow tmdb.TimeWindow // window of the default listing
}

// DefaultConfig returns the standard session timing.
func DefaultConfig() Config {
	return Config{
		Debounce:       600 * time.Millisecond,
		Timeout:        10 * time.Second,
		TrendingWindow: tmdb.WindowDay,
	}
}

// Orchestrator holds what sessions share: the catalog, the clock, timing
// and observability.
type Orchestrator struct {
	catalog Catalog
	config  Config
	clock   clockwork.Clock
	bus     *events.Bus
	log     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock sets the clock timers are armed on (for testing).
func WithClock(clock clockwork.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithBus publishes search.* events on bus.
func WithBus(bus *events.Bus) Option {
	return func(o *Orchestrator) {
		o.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// NewOrchestrator creates an orchestrator. Zero fields in cfg take their
// DefaultConfig values.
func NewOrchestrator(catalog Catalog, cfg Config, opts ...Option) *Orchestrator {
	def := DefaultConfig()
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if !cfg.TrendingWindow.Valid() {
		cfg.TrendingWindow = def.TrendingWindow
	}

	o := &Orchestrator{
		catalog: catalog,
		config:  cfg,
		clock:   clockwork.NewRealClock(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config {
	return o.config
}

func (o *Orchestrator) publish(e events.Event) {
	if o.bus == nil {
		return
	}
	if err := o.bus.Publish(context.Background(), e); err != nil {
		o.log.Warn("failed to publish search event", "type", e.EventType(), "error", err)
	}
}

// NoResultsMessage is the notice shown when a search matched nothing.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No results found for %q", query)
}

// FailureMessage is the notice shown when a dispatch failed.
func FailureMessage(query string) string {
	if query == "" {
		return "Could not load trending movies. Please try again."
	}
	return fmt.Sprintf("Search for %q failed. Please try again.", query)
}

// normalize composes the text to NFC so visually identical input from
// different keyboards produces the same query.
func normalize(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}
