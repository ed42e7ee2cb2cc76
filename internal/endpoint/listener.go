package endpoint

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/event/events"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// Listener applies keycode events to a report and forwards the report.
//
// It subscribes at event.PriorityLow so observers that must see the host
// state from before the key (such as lock behaviors) run first.
type Listener struct {
	report *hid.Report
	ep     Endpoint
	log    logr.Logger
	sub    event.Subscription
}

// NewListener creates a listener for report and ep.
func NewListener(report *hid.Report, ep Endpoint, log logr.Logger) *Listener {
	return &Listener{
		report: report,
		ep:     ep,
		log:    log,
	}
}

// Attach subscribes the listener to keycode events on bus.
func (l *Listener) Attach(bus *event.Bus) error {
	sub, err := event.SubscribePayload(bus, events.TopicKeycodeStateChanged, l.OnKeycode,
		event.WithPriority(event.PriorityLow))
	if err != nil {
		return err
	}
	l.sub = sub
	return nil
}

// Detach removes the subscription made by Attach.
func (l *Listener) Detach(bus *event.Bus) error {
	if l.sub == nil {
		return nil
	}
	err := bus.Unsubscribe(l.sub)
	l.sub = nil
	return err
}

// Report returns the report the listener maintains.
func (l *Listener) Report() *hid.Report {
	return l.report
}

// OnKeycode updates the report and sends it. It never stops propagation.
func (l *Listener) OnKeycode(ctx context.Context, k events.KeycodeStateChanged) event.Propagation {
	kc := k.Keycode()
	if k.State {
		if !l.report.Press(kc) {
			l.log.Info("keyboard report full, dropping key", "keycode", kc.String())
			return event.Bubble
		}
	} else {
		l.report.Release(kc)
	}

	snap := l.report.Snapshot()
	l.log.V(logging.TRACE).Info("report", "modifiers", snap.Modifiers.String(), "keys", len(snap.Keys))

	if err := l.ep.Send(ctx, snap); err != nil {
		l.log.Error(err, "send report", "keycode", kc.String(), "pressed", k.State)
	}
	return event.Bubble
}
