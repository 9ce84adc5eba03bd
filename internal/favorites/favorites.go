// Package favorites persists the user's favorited movies as one JSON
// document in a key/value store.
//
// Every mutation is a full read-modify-write of the document. Store
// serializes mutations within a process; separate processes sharing the same
// storage are last-writer-wins.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vmunix/reelist/internal/events"
	"github.com/vmunix/reelist/internal/tmdb"
)

// Key is the storage key of the favorites document.
const Key = "@movie_app_favorites"

// ErrStorageUnavailable wraps any failure to read or write the document on
// a mutation path.
var ErrStorageUnavailable = errors.New("favorites storage unavailable")

// Storage is the persistence layer the document lives in.
type Storage interface {
	// Read returns the stored bytes, or ok=false when key is absent.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
	Write(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store provides access to the favorites collection.
type Store struct {
	mu      sync.Mutex // held across every read-modify-write
	storage Storage
	bus     *events.Bus // may be nil
	log     *slog.Logger
}

// NewStore creates a favorites store. bus is optional.
func NewStore(storage Storage, bus *events.Bus, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		storage: storage,
		bus:     bus,
		log:     log,
	}
}

// All returns every favorite, newest first. Storage failures and unreadable
// documents are logged and reported as an empty collection.
func (s *Store) All(ctx context.Context) []tmdb.Movie {
	movies, err := s.load(ctx)
	if err != nil {
		s.log.Warn("reading favorites failed", "error", err)
		return []tmdb.Movie{}
	}
	return movies
}

// Count returns the number of favorites, 0 on failure.
func (s *Store) Count(ctx context.Context) int {
	return len(s.All(ctx))
}

// Contains reports whether id is a favorite. Failures report false.
func (s *Store) Contains(ctx context.Context, id int64) bool {
	return indexOf(s.All(ctx), id) >= 0
}

// Add prepends movie to the collection. Adding a movie that is already
// present succeeds without writing.
func (s *Store) Add(ctx context.Context, movie tmdb.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.addLocked(ctx, movie)
	return err
}

// Remove deletes id from the collection. Removing an absent id succeeds
// without writing.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.removeLocked(ctx, id)
	return err
}

// Toggle removes movie if it is a favorite and adds it otherwise. It returns
// whether the movie is a favorite afterwards. The membership check and the
// mutation happen under one lock.
func (s *Store) Toggle(ctx context.Context, movie tmdb.Movie) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies, err := s.loadForWrite(ctx)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %d: %w", movie.ID, err)
	}

	if indexOf(movies, movie.ID) >= 0 {
		if _, err := s.removeLocked(ctx, movie.ID); err != nil {
			return true, err
		}
		return false, nil
	}

	if _, err := s.addLocked(ctx, movie); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the collection by deleting the document; an absent
// document reads as empty.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear favorites: %w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// addLocked reports whether a write happened. Caller must hold s.mu.
func (s *Store) addLocked(ctx context.Context, movie tmdb.Movie) (bool, error) {
	movies, err := s.loadForWrite(ctx)
	if err != nil {
		return false, fmt.Errorf("add favorite %d: %w", movie.ID, err)
	}

	if indexOf(movies, movie.ID) >= 0 {
		return false, nil
	}

	updated := make([]tmdb.Movie, 0, len(movies)+1)
	updated = append(updated, movie)
	updated = append(updated, movies...)

	if err := s.save(ctx, updated); err != nil {
		return false, fmt.Errorf("add favorite %d: %w", movie.ID, err)
	}

	s.log.Debug("favorite added", "tmdb_id", movie.ID, "title", movie.Title, "total", len(updated))
	s.publish(ctx, &events.FavoriteAdded{
		BaseEvent: events.NewBaseEvent(events.EventFavoriteAdded, events.EntityMovie, movie.ID),
		Title:     movie.Title,
		Total:     len(updated),
	})
	return true, nil
}

// removeLocked reports whether a write happened. Caller must hold s.mu.
func (s *Store) removeLocked(ctx context.Context, id int64) (bool, error) {
	movies, err := s.loadForWrite(ctx)
	if err != nil {
		return false, fmt.Errorf("remove favorite %d: %w", id, err)
	}

	idx := indexOf(movies, id)
	if idx < 0 {
		return false, nil
	}
	updated := slices.Delete(movies, idx, idx+1)

	if err := s.save(ctx, updated); err != nil {
		return false, fmt.Errorf("remove favorite %d: %w", id, err)
	}

	s.log.Debug("favorite removed", "tmdb_id", id, "total", len(updated))
	s.publish(ctx, &events.FavoriteRemoved{
		BaseEvent: events.NewBaseEvent(events.EventFavoriteRemoved, events.EntityMovie, id),
		Total:     len(updated),
	})
	return true, nil
}

// errCorrupt marks a document that was read but could not be decoded.
var errCorrupt = errors.New("favorites document is corrupt")

func (s *Store) load(ctx context.Context) ([]tmdb.Movie, error) {
	data, ok, err := s.storage.Read(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if !ok || len(data) == 0 {
		return []tmdb.Movie{}, nil
	}

	var movies []tmdb.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	return movies, nil
}

// loadForWrite is load for mutation paths. A document that cannot be
// decoded is replaced rather than blocking every future mutation; a storage
// failure is returned so a transient error never overwrites good data.
func (s *Store) loadForWrite(ctx context.Context) ([]tmdb.Movie, error) {
	movies, err := s.load(ctx)
	if errors.Is(err, errCorrupt) {
		s.log.Warn("discarding unreadable favorites document", "error", err)
		return []tmdb.Movie{}, nil
	}
	return movies, err
}

func (s *Store) save(ctx context.Context, movies []tmdb.Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.storage.Write(ctx, Key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) publish(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		s.log.Warn("failed to publish favorite event", "type", e.EventType(), "error", err)
	}
}

func indexOf(movies []tmdb.Movie, id int64) int {
	return slices.IndexFunc(movies, func(m tmdb.Movie) bool { return m.ID == id })
}
