package event

import (
	"context"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"
)

// Bus is a synchronous publish/subscribe bus. Publish delivers to matching
// listeners in the caller's goroutine and returns once delivery stops.
// Subscribe and Unsubscribe are safe to call concurrently.
type Bus struct {
	registry *registry
	config   busConfig
	seq      atomic.Uint64

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	eventsCaptured  atomic.Uint64
	listenerPanics  atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus{
		registry: newRegistry(),
		config:   config,
	}
}

// Subscribe registers a listener for the given topic pattern.
func (b *Bus) Subscribe(pattern Topic, l Listener, opts ...SubscriptionOption) (Subscription, error) {
	if l == nil {
		return nil, ErrNilListener
	}
	if pattern == "" {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), b.seq.Add(1), pattern, l, opts...)
	b.registry.add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function.
func (b *Bus) SubscribeFunc(pattern Topic, fn ListenerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilListener
	}
	return b.Subscribe(pattern, fn, opts...)
}

// SubscribePayload subscribes a listener that receives the decoded payload.
// Events whose payload is not a T bubble past the listener untouched.
func SubscribePayload[T any](b *Bus, pattern Topic, fn func(ctx context.Context, payload T) Propagation, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilListener
	}
	return b.Subscribe(pattern, ListenerFunc(func(ctx context.Context, ev any) Propagation {
		payload, ok := Payload[T](ev)
		if !ok {
			return Bubble
		}
		return fn(ctx, payload)
	}), opts...)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Publish delivers event to every matching listener in priority order until
// one returns Capture. The returned Propagation is Capture if delivery was
// stopped, Bubble otherwise.
func (b *Bus) Publish(ctx context.Context, event any) (Propagation, error) {
	tp, ok := event.(TopicProvider)
	if !ok || tp.EventTopic() == "" {
		return Bubble, ErrInvalidEvent
	}
	t := tp.EventTopic()

	b.eventsPublished.Add(1)

	for _, sub := range b.registry.match(t) {
		if !sub.shouldDeliver(event) {
			continue
		}

		p := b.deliver(ctx, sub, t, event)
		b.eventsDelivered.Add(1)

		if p == Capture {
			b.eventsCaptured.Add(1)
			return Capture, nil
		}
	}

	return Bubble, nil
}

// deliver runs one listener, isolating panics.
func (b *Bus) deliver(ctx context.Context, sub *subscription, t Topic, event any) (p Propagation) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			b.listenerPanics.Add(1)
			p = Bubble
			func() {
				defer func() { _ = recover() }()
				b.config.panicHandler(event, &PanicError{
					SubscriptionID: sub.id,
					Topic:          t,
					Value:          r,
					Stack:          string(stack),
				}, stack)
			}()
		}
	}()
	return sub.listener.OnEvent(ctx, event)
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		EventsCaptured:    b.eventsCaptured.Load(),
		ListenerPanics:    b.listenerPanics.Load(),
		ActiveSubscribers: b.registry.countActive(),
	}
}
