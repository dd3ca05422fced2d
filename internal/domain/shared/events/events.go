package events

import (
	"strings"
	"time"
)

// DomainEvent is a fact recorded by a hotel, calendar or booking aggregate.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Source is an aggregate holding events not yet handed to the outbox.
type Source interface {
	DrainEvents() []DomainEvent
}

// EventRecorder is embedded by aggregates. Copies taken from repositories
// start with no pending events.
type EventRecorder struct {
	pending []DomainEvent
}

func (r *EventRecorder) Record(event DomainEvent) {
	if event == nil {
		return
	}
	r.pending = append(r.pending, event)
}

func (r *EventRecorder) PendingEvents() []DomainEvent {
	return append([]DomainEvent(nil), r.pending...)
}

func (r *EventRecorder) DrainEvents() []DomainEvent {
	out := r.pending
	r.pending = nil
	return out
}

// Collect drains every source in order. One booking write touches the room
// calendar and the booking, and their events leave in that order.
func Collect(sources ...Source) []DomainEvent {
	var out []DomainEvent
	for _, src := range sources {
		if src == nil {
			continue
		}
		out = append(out, src.DrainEvents()...)
	}
	return out
}

// Stream is the aggregate family of an event name: "calendar.blocked" is "calendar".
func Stream(name string) string {
	if idx := strings.IndexByte(name, '.'); idx > 0 {
		return name[:idx]
	}
	return name
}
