package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus is the central event bus for pub/sub.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	log    *EventLog // SQLite persistence (may be nil)
	logger *slog.Logger
	closed bool
}

// subscription receives events whose type is in types, or every event when
// types is empty.
type subscription struct {
	ch    chan Event
	types map[string]bool
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || s.types[eventType]
}

// NewBus creates a new event bus.
// The EventLog is optional - pass nil to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		log:    log,
		logger: logger,
	}
}

// Publish sends an event to all subscribers and optionally persists it.
// Delivery never blocks: a full subscriber channel drops the event.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	// Persist event
	if b.log != nil {
		if _, err := b.log.Append(ctx, e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
			// Continue - event delivery is more important than persistence
		}
	}

	for _, sub := range b.subs {
		if !sub.wants(e.EventType()) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}

	return nil
}

// Subscribe returns a channel for events of the given types, or for every
// event when no type is given. A closed bus yields a closed channel.
func (b *Bus) Subscribe(bufferSize int, eventTypes ...string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch
	}

	sub := subscription{ch: ch}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = true
		}
	}
	b.subs = append(b.subs, sub)
	return ch
}

// Unsubscribe removes a subscription channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil

	return nil
}
