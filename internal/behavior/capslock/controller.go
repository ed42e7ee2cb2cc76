package capslock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/indicators"
	"github.com/dshills/lockkeys/internal/logging"
)

// Emitter schedules synthetic binding transitions. Items from one caller
// must run in submission order.
type Emitter interface {
	Add(ctx context.Context, ev behavior.BindingEvent, b behavior.Binding, press bool, wait time.Duration) error
}

// Controller is one lock behavior instance.
//
// A Controller is not safe for concurrent use. Bindings and the Observer
// must drive it from the same goroutine.
type Controller struct {
	cfg   Config
	host  indicators.Reader
	queue Emitter
	log   logr.Logger

	event         behavior.BindingEvent
	active        bool
	justActivated bool
}

// NewController creates a disarmed controller.
func NewController(cfg Config, host indicators.Reader, queue Emitter, log logr.Logger) *Controller {
	return &Controller{
		cfg:   cfg,
		host:  host,
		queue: queue,
		log:   log.WithValues("behavior", cfg.Name),
	}
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Name returns the behavior name.
func (c *Controller) Name() string {
	return c.cfg.Name
}

// Active reports whether the controller considers the lock armed.
func (c *Controller) Active() bool {
	return c.active
}

// JustActivated reports whether the lock was armed since the last
// binding release.
func (c *Controller) JustActivated() bool {
	return c.justActivated
}

// Pressed implements behavior.Behavior.
func (c *Controller) Pressed(ctx context.Context, _ behavior.Binding, ev behavior.BindingEvent) (behavior.Status, error) {
	c.event = ev

	if c.cfg.EnableOnPress {
		c.log.V(logging.DEBUG).Info("activating lock (enable-on-press)")
		c.Activate(ctx)
	}
	return behavior.Opaque, nil
}

// Released implements behavior.Behavior.
func (c *Controller) Released(ctx context.Context, _ behavior.Binding, _ behavior.BindingEvent) (behavior.Status, error) {
	switch {
	case c.cfg.DisableOnRelease:
		c.log.V(logging.DEBUG).Info("deactivating lock (disable-on-release)")
		c.Deactivate(ctx)
	case c.cfg.DisableOnNextRelease && !c.justActivated:
		c.log.V(logging.DEBUG).Info("deactivating lock (disable-on-next-release)")
		c.Deactivate(ctx)
	}
	c.justActivated = false
	return behavior.Opaque, nil
}

// Activate turns the host lock on and arms the controller. Re-arming an
// armed controller keeps JustActivated as it was.
func (c *Controller) Activate(ctx context.Context) {
	c.sync(ctx, true)
	c.justActivated = c.justActivated || !c.active
	c.active = true
}

// Deactivate turns the host lock off and disarms the controller.
func (c *Controller) Deactivate(ctx context.Context) {
	c.sync(ctx, false)
	c.active = false
}

// HostLocked reports whether the host indicator for this lock is on.
func (c *Controller) HostLocked() bool {
	return c.host.Indicators().Has(c.cfg.LockIndicator())
}

// disarm clears the armed flag without touching the host.
func (c *Controller) disarm() {
	c.active = false
}

func (c *Controller) sync(ctx context.Context, target bool) {
	current := c.HostLocked()
	if current == target {
		c.log.V(logging.DEBUG).Info("lock state is already set", "state", target)
		return
	}
	c.log.V(logging.DEBUG).Info("toggling lock state", "from", current, "to", target)
	c.toggle(ctx)
}

// toggle queues a tap of the press keycode. Submission is best effort: a
// rejected item is logged and not retried.
func (c *Controller) toggle(ctx context.Context) {
	u := c.cfg.PressUsage()
	b := behavior.KeyPressBinding(hid.NewKeycode(u, 0))

	c.log.V(logging.DEBUG).Info("queueing lock press",
		"duration", c.cfg.PressDuration,
		"usagePage", fmt.Sprintf("0x%02X", u.Page()),
		"keycode", fmt.Sprintf("0x%02X", u.ID()))

	if err := c.queue.Add(ctx, c.event, b, true, c.cfg.PressDuration); err != nil {
		c.log.Error(err, "queue lock press")
		return
	}
	if err := c.queue.Add(ctx, c.event, b, false, 0); err != nil {
		c.log.Error(err, "queue lock release")
	}
}
