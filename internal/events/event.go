// Package events provides the in-process event bus and its sqlite log.
package events

import "time"

// Event is what the favorites store and search sessions publish.
//
// EntityID depends on EntityType: the TMDB movie id for EntityMovie, and the
// dispatch generation within its session for EntitySearch. Generations
// restart at 1 in every session, so search events are told apart by their
// Session field.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent is embedded by every event type. EventLog also stores its
// fields as columns next to the JSON payload.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps an event with the current time.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}
