package behavior

import (
	"context"
	"fmt"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/event/events"
	"github.com/dshills/lockkeys/internal/hid"
)

// KeyPressName is the registry name of the key press behavior.
const KeyPressName = "key_press"

// Publisher is the part of the event bus that behaviors raise events on.
type Publisher interface {
	Publish(ctx context.Context, ev any) (event.Propagation, error)
}

// KeyPress raises a keycode state change for the keycode in Param1.
type KeyPress struct {
	bus Publisher
}

// NewKeyPress creates the key press behavior.
func NewKeyPress(bus Publisher) *KeyPress {
	return &KeyPress{bus: bus}
}

// Pressed implements Behavior.
func (k *KeyPress) Pressed(ctx context.Context, b Binding, ev BindingEvent) (Status, error) {
	return k.raise(ctx, b, ev, true)
}

// Released implements Behavior.
func (k *KeyPress) Released(ctx context.Context, b Binding, ev BindingEvent) (Status, error) {
	return k.raise(ctx, b, ev, false)
}

func (k *KeyPress) raise(ctx context.Context, b Binding, ev BindingEvent, pressed bool) (Status, error) {
	kc := hid.Keycode(b.Param1)
	if kc.Usage().IsZero() {
		return Opaque, fmt.Errorf("%s: empty keycode", KeyPressName)
	}
	if _, err := k.bus.Publish(ctx, events.NewKeycodeStateChanged(kc, pressed, ev.Timestamp)); err != nil {
		return Opaque, fmt.Errorf("%s %s: %w", KeyPressName, kc, err)
	}
	return Opaque, nil
}

// KeyPressBinding builds a key_press binding for kc.
func KeyPressBinding(kc hid.Keycode) Binding {
	return Binding{Behavior: KeyPressName, Param1: uint32(kc)}
}
