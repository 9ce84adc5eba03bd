package events

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/reelist/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(migrations.Schema)
	require.NoError(t, err)
	return db
}

func TestEventLog_Append(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	e := &FavoriteAdded{
		BaseEvent: NewBaseEvent(EventFavoriteAdded, EntityMovie, 550),
		Title:     "Fight Club",
		Total:     1,
	}

	id, err := log.Append(context.Background(), e)
	require.NoError(t, err)
	assert.Positive(t, id)

	// Verify payload is stored correctly
	events, err := log.ForEntity(context.Background(), EntityMovie, 550)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Payload, `"title":"Fight Club"`)
	assert.Equal(t, EventFavoriteAdded, events[0].EventType)
	assert.Equal(t, EntityMovie, events[0].EntityType)
	assert.Equal(t, int64(550), events[0].EntityID)
}

func TestEventLog_Since(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	start := time.Now().Add(-time.Hour)

	e1 := &testEvent{BaseEvent: NewBaseEvent("test.first", "test", 1), Message: "first"}
	e2 := &testEvent{BaseEvent: NewBaseEvent("test.second", "test", 2), Message: "second"}

	_, err := log.Append(ctx, e1)
	require.NoError(t, err)
	_, err = log.Append(ctx, e2)
	require.NoError(t, err)

	events, err := log.Since(ctx, start)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// Verify order (by id ascending)
	assert.Equal(t, "test.first", events[0].EventType)
	assert.Equal(t, "test.second", events[1].EventType)
}

func TestEventLog_ForEntity(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	e1 := &FavoriteAdded{BaseEvent: NewBaseEvent(EventFavoriteAdded, EntityMovie, 1)}
	e2 := &FavoriteAdded{BaseEvent: NewBaseEvent(EventFavoriteAdded, EntityMovie, 2)}
	e3 := &FavoriteRemoved{BaseEvent: NewBaseEvent(EventFavoriteRemoved, EntityMovie, 1)}

	for _, e := range []Event{e1, e2, e3} {
		_, err := log.Append(ctx, e)
		require.NoError(t, err)
	}

	events, err := log.ForEntity(ctx, EntityMovie, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventFavoriteAdded, events[0].EventType)
	assert.Equal(t, EventFavoriteRemoved, events[1].EventType)

	events2, err := log.ForEntity(ctx, EntityMovie, 2)
	require.NoError(t, err)
	assert.Len(t, events2, 1)
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	// Insert an event with a manually backdated occurred_at
	_, err := db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		"test.old", "test", 1, `{"message":"old"}`, time.Now().Add(-100*24*time.Hour),
	)
	require.NoError(t, err)

	e := &testEvent{BaseEvent: NewBaseEvent("test.new", "test", 2), Message: "new"}
	_, err = log.Append(ctx, e)
	require.NoError(t, err)

	count, err := log.Prune(ctx, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events, err := log.Since(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "test.new", events[0].EventType)
}

func TestEventLog_Recent(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		evt := &FavoriteAdded{
			BaseEvent: NewBaseEvent(EventFavoriteAdded, EntityMovie, int64(i+1)),
			Title:     fmt.Sprintf("Movie %d", i+1),
		}
		_, err := log.Append(ctx, evt)
		require.NoError(t, err)
	}
	_, err := log.Append(ctx, &SearchApplied{
		BaseEvent: NewBaseEvent(EventSearchApplied, EntitySearch, 1),
		Query:     "matrix",
	})
	require.NoError(t, err)

	// Get last 3 movie events
	events, err := log.Recent(ctx, EntityMovie, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Newest first
	assert.Equal(t, int64(5), events[0].EntityID)
	assert.Equal(t, int64(4), events[1].EntityID)
	assert.Equal(t, int64(3), events[2].EntityID)

	// Unfiltered includes the search event on top
	all, err := log.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, EventSearchApplied, all[0].EventType)
}

// testEvent is a concrete event type for testing
type testEvent struct {
	BaseEvent
	Message string `json:"message"`
}
