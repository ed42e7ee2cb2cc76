package capslock

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/lockkeys/internal/hid"
)

const (
	// DefaultPressDuration is how long the lock key is held when toggled.
	DefaultPressDuration = 5 * time.Millisecond

	// MacPressDuration is the hold macOS needs before it accepts a Caps
	// Lock press.
	MacPressDuration = 95 * time.Millisecond
)

// KeyItem is a key that disarms a controller when pressed.
type KeyItem struct {
	Page uint16
	ID   uint16
	// Modifiers must all be in effect for the item to match.
	Modifiers hid.Modifiers
}

// KeyItemFromKeycode splits a keycode into a key item. Implicit modifiers
// of the keycode become the required modifiers.
func KeyItemFromKeycode(kc hid.Keycode) KeyItem {
	u := kc.Usage()
	return KeyItem{Page: u.Page(), ID: u.ID(), Modifiers: kc.Modifiers()}
}

// Keycode reassembles the item as a keycode.
func (k KeyItem) Keycode() hid.Keycode {
	return hid.NewKeycode(hid.NewUsage(k.Page, k.ID), k.Modifiers)
}

// String returns the item in key-spec form, e.g. "LS(A)".
func (k KeyItem) String() string {
	return k.Keycode().String()
}

// ParseKeyItems parses a list of key specs.
func ParseKeyItems(specs []string) ([]KeyItem, error) {
	items := make([]KeyItem, 0, len(specs))
	for _, s := range specs {
		kc, err := hid.ParseKeycode(s)
		if err != nil {
			return nil, err
		}
		items = append(items, KeyItemFromKeycode(kc))
	}
	return items, nil
}

// Config is the static configuration of one controller.
type Config struct {
	// Index is the controller's slot in the Registry.
	Index int
	// Name is the behavior name bindings refer to.
	Name string
	// DisplayName is shown to users. Defaults to Name.
	DisplayName string

	// Lock is the host indicator the controller drives. Zero selects
	// Caps Lock.
	Lock hid.Indicators
	// PressKeycode is the key tapped to toggle the lock. Zero selects
	// the lock's standard key.
	PressKeycode hid.Usage
	// PressDuration is how long the key is held down.
	PressDuration time.Duration

	EnableOnPress        bool
	DisableOnRelease     bool
	DisableOnNextRelease bool
	DisableOnKeys        []KeyItem
}

// LockIndicator returns the indicator bit the controller watches.
func (c Config) LockIndicator() hid.Indicators {
	if c.Lock == 0 {
		return hid.IndicatorCapsLock
	}
	return c.Lock
}

// PressUsage returns the usage tapped to toggle the lock.
func (c Config) PressUsage() hid.Usage {
	if !c.PressKeycode.IsZero() {
		return c.PressKeycode
	}
	return hid.LockUsage(c.LockIndicator())
}

// Label returns DisplayName, or Name if unset.
func (c Config) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// Policies returns the enabled policy flags, e.g. "enable-on-press,disable-on-release".
func (c Config) Policies() string {
	var p []string
	if c.EnableOnPress {
		p = append(p, "enable-on-press")
	}
	if c.DisableOnRelease {
		p = append(p, "disable-on-release")
	}
	if c.DisableOnNextRelease {
		p = append(p, "disable-on-next-release")
	}
	if len(p) == 0 {
		return "none"
	}
	return strings.Join(p, ",")
}

// Validate checks that the lock can be toggled.
func (c Config) Validate() error {
	if c.Index < 0 {
		return fmt.Errorf("%s: index %d: %w", c.Name, c.Index, ErrIndexOutOfRange)
	}
	if c.PressUsage().IsZero() {
		return fmt.Errorf("%s: lock %s: %w", c.Name, c.LockIndicator(), ErrInvalidLock)
	}
	if c.PressDuration < 0 {
		return fmt.Errorf("%s: negative press duration %s", c.Name, c.PressDuration)
	}
	return nil
}
