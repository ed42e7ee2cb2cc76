package event

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topic is a hierarchical, dot-separated event type such as
// "keycode.state_changed".
type Topic string

// Matches reports whether the topic t is selected by pattern. A pattern is
// either an exact topic, "*", or a prefix ending in ".*".
func (t Topic) Matches(pattern Topic) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasSuffix(string(pattern), ".*"):
		return strings.HasPrefix(string(t), string(pattern[:len(pattern)-1]))
	default:
		return t == pattern
	}
}

// Event represents an event in the system.
// Events are immutable once created.
type Event[T any] struct {
	// Type is the hierarchical event type (e.g., "keycode.state_changed").
	Type Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string

	// CausationID links to the event that caused this one.
	CausationID string
}

// NewEvent creates a new event with the given type and payload.
func NewEvent[T any](eventType Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// WithCausation returns a copy of the event with a causation ID set.
func (e Event[T]) WithCausation(causationID string) Event[T] {
	e.Metadata.CausationID = causationID
	return e
}

// TopicProvider is implemented by types that can provide their topic.
type TopicProvider interface {
	EventTopic() Topic
}

// Payload extracts a typed payload from a type-erased event. It accepts an
// Event[T] or a bare T.
func Payload[T any](ev any) (T, bool) {
	switch e := ev.(type) {
	case Event[T]:
		return e.Payload, true
	case *Event[T]:
		if e != nil {
			return e.Payload, true
		}
	case T:
		return e, true
	}
	var zero T
	return zero, false
}
