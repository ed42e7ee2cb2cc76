package capslock_test

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/hid"
)

// fakeHost is a host whose indicators only change when told to.
type fakeHost struct {
	ind hid.Indicators
}

func (h *fakeHost) Indicators() hid.Indicators {
	return h.ind
}

type submission struct {
	Event   behavior.BindingEvent
	Binding behavior.Binding
	Press   bool
	Wait    time.Duration
}

// fakeQueue records submissions. With apply set, a queued lock key press
// toggles the host immediately, as if the host processed it at once.
type fakeQueue struct {
	host  *fakeHost
	apply bool
	fail  bool
	subs  []submission
}

var errQueueFull = errors.New("queue full")

func (q *fakeQueue) Add(_ context.Context, ev behavior.BindingEvent, b behavior.Binding, press bool, wait time.Duration) error {
	if q.fail {
		return errQueueFull
	}
	q.subs = append(q.subs, submission{Event: ev, Binding: b, Press: press, Wait: wait})
	if q.apply && press {
		if ind, ok := hid.LockIndicator(hid.Keycode(b.Param1).Usage()); ok {
			q.host.ind = q.host.ind.Toggle(ind)
		}
	}
	return nil
}

// pairs returns how many press/release pairs were submitted.
func (q *fakeQueue) pairs() int {
	return len(q.subs) / 2
}

type heldMods hid.Modifiers

func (m heldMods) ExplicitModifiers() hid.Modifiers {
	return hid.Modifiers(m)
}
