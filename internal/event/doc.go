// Package event provides the keyboard's in-process event bus.
//
// Components publish immutable event values; listeners subscribe to a topic
// and decide, per event, whether the event keeps propagating to later
// listeners. All delivery is synchronous in the publisher's goroutine, so a
// publish call returns only after every listener has run to completion.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	keycode.state_changed    - A keycode was pressed or released
//	indicators.changed       - The host changed its lock LEDs
//
// # Wildcard Patterns
//
// Subscriptions support a trailing wildcard:
//
//	keycode.*    - matches keycode.state_changed
//	*            - matches every topic
//
// # Propagation
//
// A listener returns Bubble to let the event continue to the next listener,
// or Capture to stop delivery. Listeners run in priority order (lower values
// first); listeners with equal priority run in subscription order.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	sub, err := event.SubscribePayload(bus, events.TopicKeycodeStateChanged,
//	    func(ctx context.Context, ev events.KeycodeStateChanged) event.Propagation {
//	        if ev.State {
//	            fmt.Println("pressed", ev.Usage())
//	        }
//	        return event.Bubble
//	    })
//
//	bus.Publish(ctx, events.NewKeycodeStateChanged(hid.NewKeycode(hid.KeyA, 0), true, now))
//
// # Panic Isolation
//
// A listener that panics is treated as having returned Bubble; the panic is
// reported to the bus's PanicHandler and counted in Stats.
package event
