package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelist/internal/events"
	"github.com/vmunix/reelist/internal/search"
	"github.com/vmunix/reelist/internal/tmdb"
)

func newExploreCmd(opts *rootOptions) *cobra.Command {
	var (
		debounce   time.Duration
		showEvents bool
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Search as you type",
		Long: `Search as you type.

Each line read from stdin replaces the search field. Searches wait for the
debounce period after the last line; an empty line shows trending movies.
Results of superseded searches are never shown.

With --events, searches whose results were dropped or that failed are
reported as they happen.

Examples:
  reelist explore
  printf 'mat\nmatrix\n' | reelist explore --debounce 200ms
  reelist explore --events`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			p := &resultPrinter{w: a.out, json: a.json, favorite: favoriteSet(ctx, a)}
			session := a.orchestrator(debounce).NewSession(p)
			defer session.Close()

			if showEvents {
				stop := p.followEvents(a.bus)
				defer stop()
			}

			if !a.json {
				fmt.Fprintln(a.out, "Type a title and press enter. Empty line shows trending, Ctrl-D quits.")
			}

			lines := make(chan string)
			go func() {
				defer close(lines)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					select {
					case lines <- scanner.Text():
					case <-ctx.Done():
						return
					}
				}
			}()

			session.OnQueryChange("")
			for {
				select {
				case <-ctx.Done():
					return nil
				case line, ok := <-lines:
					if !ok {
						// Input ended: flush whatever is still waiting on the timer.
						if session.Pending() {
							session.Submit()
						}
						session.Wait()
						return nil
					}
					session.OnQueryChange(line)
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before searching (default from config)")
	cmd.Flags().BoolVar(&showEvents, "events", false, "Report dropped and failed searches")
	return cmd
}

// resultPrinter is the search.Listener that writes to the terminal.
type resultPrinter struct {
	mu       sync.Mutex
	w        io.Writer
	json     bool
	favorite func(int64) bool
}

type exploreResult struct {
	Query   string       `json:"query"`
	Results []tmdb.Movie `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
	Notice  string       `json:"notice,omitempty"`
}

func (p *resultPrinter) OnResults(query string, movies []tmdb.Movie) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		printJSON(p.w, exploreResult{Query: query, Results: movies})
		return
	}
	if len(movies) == 0 {
		return
	}
	if query == "" {
		fmt.Fprintf(p.w, "\nTrending (%d):\n\n", len(movies))
	} else {
		fmt.Fprintf(p.w, "\nResults for %q (%d):\n\n", query, len(movies))
	}
	printMovies(p.w, movies, p.favorite)
}

func (p *resultPrinter) OnEmpty(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		printJSON(p.w, exploreResult{Query: query, Notice: search.NoResultsMessage(query)})
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", search.NoResultsMessage(query))
}

func (p *resultPrinter) OnError(query string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		printJSON(p.w, exploreResult{Query: query, Error: err.Error(), Notice: search.FailureMessage(query)})
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", search.FailureMessage(query))
}

// followEvents prints search.discarded and search.failed events from bus
// until the returned stop function is called. stop drains what was already
// published before returning.
func (p *resultPrinter) followEvents(bus *events.Bus) (stop func()) {
	ch := bus.Subscribe(64, events.EventSearchDiscarded, events.EventSearchFailed)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for e := range ch {
			p.printEvent(e)
		}
	}()

	return func() {
		bus.Unsubscribe(ch)
		<-done
	}
}

func (p *resultPrinter) printEvent(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		printJSON(p.w, e)
		return
	}
	switch ev := e.(type) {
	case *events.SearchDiscarded:
		fmt.Fprintf(p.w, "dropped %s result for %q%s\n", ev.Reason, ev.Query, sessionTag(ev.Session))
	case *events.SearchFailed:
		fmt.Fprintf(p.w, "search %q failed: %s%s\n", ev.Query, ev.Error, sessionTag(ev.Session))
	}
}
