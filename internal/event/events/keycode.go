package events

import (
	"time"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/hid"
)

// TopicKeycodeStateChanged is raised whenever a keycode is pressed or
// released on the keyboard report.
const TopicKeycodeStateChanged event.Topic = "keycode.state_changed"

// KeycodeStateChanged describes a single key transition.
type KeycodeStateChanged struct {
	UsagePage uint16
	KeyID     uint16

	// ImplicitModifiers are carried by the keycode itself, e.g. LS(A).
	ImplicitModifiers hid.Modifiers

	// State is true for a press and false for a release.
	State bool

	Timestamp time.Time
}

// Usage returns the page and id as a packed usage.
func (k KeycodeStateChanged) Usage() hid.Usage {
	return hid.NewUsage(k.UsagePage, k.KeyID)
}

// Keycode returns the usage with its implicit modifiers.
func (k KeycodeStateChanged) Keycode() hid.Keycode {
	return hid.NewKeycode(k.Usage(), k.ImplicitModifiers)
}

// NewKeycodeStateChanged builds the bus event for a key transition.
func NewKeycodeStateChanged(kc hid.Keycode, pressed bool, ts time.Time) event.Event[KeycodeStateChanged] {
	return event.NewEvent(TopicKeycodeStateChanged, KeycodeStateChanged{
		UsagePage:         kc.Usage().Page(),
		KeyID:             kc.Usage().ID(),
		ImplicitModifiers: kc.Modifiers(),
		State:             pressed,
		Timestamp:         ts,
	}, "keyboard")
}

// AsKeycodeStateChanged decodes a type-erased bus event. It returns false
// for any other event type.
func AsKeycodeStateChanged(ev any) (KeycodeStateChanged, bool) {
	return event.Payload[KeycodeStateChanged](ev)
}
