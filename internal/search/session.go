package search

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/vmunix/reelist/internal/events"
	"github.com/vmunix/reelist/internal/tmdb"
)

// Session is one search screen. It owns at most one pending timer and
// applies only the result of its latest dispatch.
//
// States: idle (no timer), pending (timer armed), executing (catalog call
// in flight). Pending and executing may overlap when a new query is armed
// while an older dispatch is still running; that older result is stale.
type Session struct {
	id       string
	o        *Orchestrator
	listener Listener
	ctx      context.Context // cancelled by Close
	cancel   context.CancelFunc

	mu             sync.Mutex
	query          string
	timer          clockwork.Timer
	armed          uint64 // token of the live timer; bumped on every cancel
	generation     uint64 // id of the latest dispatch
	lastDispatched string
	results        []tmdb.Movie
	closed         bool

	deliverMu sync.Mutex // held across the staleness check and delivery; taken before mu
	inflight  sync.WaitGroup
}

// NewSession starts a session reporting to l.
func (o *Orchestrator) NewSession(l Listener) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:       uuid.NewString(),
		o:        o,
		listener: l,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID identifies the session in search.* events.
func (s *Session) ID() string {
	return s.id
}

// OnQueryChange handles an edit of the search field.
//
// Blank text cancels any pending search and loads the default listing at
// once. Other text re-arms the debounce timer; the query is captured now,
// not when the timer fires.
func (s *Session) OnQueryChange(text string) {
	query := normalize(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.query = query
	s.cancelTimerLocked()

	if query == "" {
		s.dispatchLocked("", true)
		return
	}

	token := s.armed
	s.timer = s.o.clock.AfterFunc(s.o.config.Debounce, func() {
		s.fire(token, query)
	})
}

// Submit dispatches the current query immediately instead of waiting out
// the debounce period.
func (s *Session) Submit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.cancelTimerLocked()
	s.dispatchLocked(s.query, s.query == "")
}

// Close stops the pending timer and abandons any in-flight call. A listener
// callback already running finishes first; none starts after Close returns.
// Close is idempotent and must not be called from a Listener callback.
func (s *Session) Close() {
	s.deliverMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.deliverMu.Unlock()
		return
	}
	s.closed = true
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.deliverMu.Unlock()

	s.cancel()
}

// Wait blocks until every dispatched call has completed or been abandoned.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Query returns the current (normalized) field text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// LastDispatched returns the query of the latest dispatch.
func (s *Session) LastDispatched() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDispatched
}

// Pending reports whether a debounce timer is armed.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Results returns the currently displayed list.
func (s *Session) Results() []tmdb.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.results)
}

// cancelTimerLocked stops the pending timer. Bumping armed orphans a timer
// whose callback is already running. Caller must hold s.mu.
func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armed++
}

func (s *Session) fire(token uint64, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || token != s.armed {
		return
	}
	s.timer = nil
	s.dispatchLocked(query, false)
}

// dispatchLocked starts a catalog call tagged with a new generation.
// Caller must hold s.mu.
func (s *Session) dispatchLocked(query string, listing bool) {
	s.generation++
	gen := s.generation
	s.lastDispatched = query

	s.inflight.Add(1)
	go s.execute(gen, query, listing)
}

func (s *Session) execute(gen uint64, query string, listing bool) {
	defer s.inflight.Done()

	s.o.log.Debug("search dispatched", "session", s.id, "query", query, "listing", listing, "generation", gen)
	s.o.publish(&events.SearchDispatched{
		BaseEvent: events.NewBaseEvent(events.EventSearchDispatch, events.EntitySearch, int64(gen)),
		Session:   s.id,
		Query:     query,
		Listing:   listing,
	})

	ctx, cancel := context.WithTimeout(s.ctx, s.o.config.Timeout)
	defer cancel()

	var (
		list *tmdb.MovieList
		err  error
	)
	if listing {
		list, err = s.o.catalog.Trending(ctx, s.o.config.TrendingWindow)
	} else {
		list, err = s.o.catalog.Search(ctx, query, 1)
	}

	s.complete(gen, query, listing, list, err)
}

func (s *Session) complete(gen uint64, query string, listing bool, list *tmdb.MovieList, err error) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	closed := s.closed
	stale := gen != s.generation
	s.mu.Unlock()

	if closed || stale {
		reason := "stale"
		if closed {
			reason = "closed"
		}
		s.o.log.Debug("search result discarded", "query", query, "generation", gen, "reason", reason)
		s.o.publish(&events.SearchDiscarded{
			BaseEvent: events.NewBaseEvent(events.EventSearchDiscarded, events.EntitySearch, int64(gen)),
			Session:   s.id,
			Query:     query,
			Reason:    reason,
		})
		return
	}

	if err != nil {
		s.o.log.Warn("search failed", "query", query, "generation", gen, "error", err)
		s.o.publish(&events.SearchFailed{
			BaseEvent: events.NewBaseEvent(events.EventSearchFailed, events.EntitySearch, int64(gen)),
			Session:   s.id,
			Query:     query,
			Error:     err.Error(),
		})
		s.listener.OnError(query, err)
		return
	}

	movies := []tmdb.Movie{}
	if list != nil && list.Results != nil {
		movies = list.Results
	}

	s.mu.Lock()
	s.results = movies
	s.mu.Unlock()

	s.o.publish(&events.SearchApplied{
		BaseEvent: events.NewBaseEvent(events.EventSearchApplied, events.EntitySearch, int64(gen)),
		Session:   s.id,
		Query:     query,
		Results:   len(movies),
	})
	s.listener.OnResults(query, slices.Clone(movies))
	if len(movies) == 0 && !listing {
		s.listener.OnEmpty(query)
	}
}
