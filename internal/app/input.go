package app

import (
	"context"
	"fmt"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// KeyDown feeds a physical key press. A key bound to a lock behavior
// actuates that behavior; any other key is pressed through key_press.
func (app *Application) KeyDown(ctx context.Context, kc hid.Keycode) error {
	return app.do(ctx, "key down", kc.String(), func(ctx context.Context) error {
		u := kc.Usage()
		if _, ok := app.held[u]; ok {
			app.log.V(logging.DEBUG).Info("key already down", "key", kc.String())
			return nil
		}

		b, ok := app.triggers[u]
		if !ok {
			b = behavior.KeyPressBinding(kc)
		}
		ev := behavior.BindingEvent{Position: uint32(u), Timestamp: app.opts.Clock()}
		app.held[u] = heldBinding{binding: b, event: ev}

		_, err := app.behaviors.Invoke(ctx, b, ev, true)
		return err
	})
}

// KeyUp releases a key previously passed to KeyDown. The binding resolved
// at press time is released, even if the keymap changed since.
func (app *Application) KeyUp(ctx context.Context, kc hid.Keycode) error {
	return app.do(ctx, "key up", kc.String(), func(ctx context.Context) error {
		u := kc.Usage()
		h, ok := app.held[u]
		if !ok {
			return ErrNotHeld
		}
		delete(app.held, u)

		ev := h.event
		ev.Timestamp = app.opts.Clock()
		_, err := app.behaviors.Invoke(ctx, h.binding, ev, false)
		return err
	})
}

// TapKey presses and releases kc.
func (app *Application) TapKey(ctx context.Context, kc hid.Keycode) error {
	if err := app.KeyDown(ctx, kc); err != nil {
		return err
	}
	return app.KeyUp(ctx, kc)
}

// TypeText taps the key for each character of s. Upper-case letters and
// underscores are sent with an implicit shift.
func (app *Application) TypeText(ctx context.Context, s string) error {
	for _, r := range s {
		kc, ok := hid.KeycodeForRune(r)
		if !ok {
			return NewOperationError("type", fmt.Sprintf("%q", r), ErrUntypable)
		}
		if err := app.TapKey(ctx, kc); err != nil {
			return err
		}
	}
	return nil
}

// PressBinding actuates a lock behavior by name, as if its key went down.
func (app *Application) PressBinding(ctx context.Context, name string) error {
	return app.invokeNamed(ctx, "press", name, true)
}

// ReleaseBinding releases a lock behavior by name.
func (app *Application) ReleaseBinding(ctx context.Context, name string) error {
	return app.invokeNamed(ctx, "release", name, false)
}

func (app *Application) invokeNamed(ctx context.Context, op, name string, pressed bool) error {
	if _, ok := app.locks.Lookup(name); !ok {
		return NewOperationError(op, name, ErrUnknownBehavior)
	}
	return app.do(ctx, op, name, func(ctx context.Context) error {
		ev := behavior.BindingEvent{Timestamp: app.opts.Clock()}
		_, err := app.behaviors.Invoke(ctx, behavior.Binding{Behavior: name}, ev, pressed)
		return err
	})
}

// SetHostIndicators replaces the host's lock state, as when another
// keyboard or the user toggles a lock on the host.
func (app *Application) SetHostIndicators(ctx context.Context, ind hid.Indicators) error {
	return app.do(ctx, "set indicators", ind.String(), func(ctx context.Context) error {
		return app.store.Set(ctx, ind)
	})
}

// Trigger returns the key bound to the named behavior.
func (app *Application) Trigger(name string) (hid.Usage, bool) {
	for u, b := range app.triggers {
		if b.Behavior == name {
			return u, true
		}
	}
	return 0, false
}

// Binding returns the behavior bound to trigger key u.
func (app *Application) Binding(u hid.Usage) (string, bool) {
	b, ok := app.triggers[u]
	return b.Behavior, ok
}
