package capslock

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/event/events"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// ModifierSource reports the modifiers currently held through modifier
// keys.
type ModifierSource interface {
	ExplicitModifiers() hid.Modifiers
}

// Observer disarms controllers in response to key-down events.
type Observer struct {
	reg  *Registry
	mods ModifierSource
	log  logr.Logger
}

// NewObserver creates an observer over every controller in reg.
func NewObserver(reg *Registry, mods ModifierSource, log logr.Logger) *Observer {
	return &Observer{reg: reg, mods: mods, log: log}
}

// Attach subscribes the observer to key-down events. It runs at
// event.PriorityHigh so it sees each key before the report reaches the
// host.
func (o *Observer) Attach(bus *event.Bus) (event.Subscription, error) {
	return bus.Subscribe(events.TopicKeycodeStateChanged, o,
		event.WithPriority(event.PriorityHigh),
		event.WithFilter(keyDown))
}

func keyDown(ev any) bool {
	k, ok := events.AsKeycodeStateChanged(ev)
	return ok && k.State
}

// OnEvent implements event.Listener. It always bubbles.
func (o *Observer) OnEvent(ctx context.Context, ev any) event.Propagation {
	if !keyDown(ev) {
		return event.Bubble
	}
	k, _ := events.AsKeycodeStateChanged(ev)
	o.Observe(ctx, k)
	return event.Bubble
}

// Observe applies one key-down to every armed controller.
func (o *Observer) Observe(ctx context.Context, k events.KeycodeStateChanged) {
	usage := k.Usage()
	mods := k.ImplicitModifiers
	if o.mods != nil {
		mods |= o.mods.ExplicitModifiers()
	}

	o.reg.Each(func(c *Controller) {
		if !c.Active() {
			return
		}
		if usage == c.cfg.PressUsage() {
			if c.HostLocked() {
				c.log.V(logging.DEBUG).Info("lock being toggled off by its own key",
					"usagePage", fmt.Sprintf("0x%02X", k.UsagePage),
					"keycode", fmt.Sprintf("0x%02X", k.KeyID))
				c.disarm()
			}
			return
		}
		if item, ok := MatchKeyItem(c.cfg.DisableOnKeys, k.UsagePage, k.KeyID, mods); ok {
			c.log.V(logging.DEBUG).Info("deactivating lock (disable-on-keys)",
				"item", item.String(),
				"usagePage", fmt.Sprintf("0x%02X", k.UsagePage),
				"keycode", fmt.Sprintf("0x%02X", k.KeyID))
			c.Deactivate(ctx)
		}
	})
}
