package event

import "context"

// Propagation tells the bus whether an event continues to later listeners.
type Propagation int

const (
	// Bubble lets the event continue to the next listener.
	Bubble Propagation = iota

	// Capture stops delivery; later listeners do not see the event.
	Capture
)

// String returns a human-readable propagation name.
func (p Propagation) String() string {
	switch p {
	case Bubble:
		return "bubble"
	case Capture:
		return "capture"
	default:
		return "unknown"
	}
}

// Priority determines listener execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for listeners that must observe events before anything else.
	PriorityCritical Priority = 0

	// PriorityHigh is for behaviour listeners.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for tracing and logging listeners that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Listener is the interface for event listeners. The event parameter is
// type-erased; listeners type-assert or use Payload.
type Listener interface {
	OnEvent(ctx context.Context, event any) Propagation
}

// ListenerFunc is a function adapter for Listener.
type ListenerFunc func(ctx context.Context, event any) Propagation

// OnEvent implements the Listener interface.
func (f ListenerFunc) OnEvent(ctx context.Context, event any) Propagation {
	return f(ctx, event)
}

// FilterFunc is a predicate for filtering events.
// Return true to allow the event, false to filter it out.
type FilterFunc func(event any) bool

// Stats contains event bus statistics.
type Stats struct {
	// EventsPublished is the total number of events published.
	EventsPublished uint64

	// EventsDelivered is the total number of listener invocations.
	EventsDelivered uint64

	// EventsCaptured is the number of events stopped by a listener.
	EventsCaptured uint64

	// ListenerPanics is the number of listeners that panicked.
	ListenerPanics uint64

	// ActiveSubscribers is the current number of active subscriptions.
	ActiveSubscribers int
}

// PanicHandler is called when a listener panics. recovered is a *PanicError
// carrying the panic value.
type PanicHandler func(event any, recovered any, stack []byte)

// DefaultPanicHandler ignores panics; they are already isolated and counted.
func DefaultPanicHandler(event any, recovered any, stack []byte) {}
