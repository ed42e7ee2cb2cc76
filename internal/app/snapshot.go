package app

import (
	"context"
	"slices"

	"github.com/dshills/lockkeys/internal/behavior/capslock"
	"github.com/dshills/lockkeys/internal/hid"
)

// LockState is the observable state of one lock controller.
type LockState struct {
	Index         int
	Name          string
	Label         string
	Policies      string
	Lock          hid.Indicators
	Active        bool
	JustActivated bool
}

// Snapshot is a consistent view of the keyboard and the host.
type Snapshot struct {
	Indicators hid.Indicators
	Locks      []LockState
	Report     hid.Snapshot
	Held       []hid.Usage
	Text       string
	Pending    int
	History    []string
}

// Lock returns the state of the named controller.
func (s Snapshot) Lock(name string) (LockState, bool) {
	for _, l := range s.Locks {
		if l.Name == name {
			return l, true
		}
	}
	return LockState{}, false
}

// Snapshot captures the current state on the loop.
func (app *Application) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := app.do(ctx, "snapshot", "", func(context.Context) error {
		snap = app.snapshotLocked()
		return nil
	})
	return snap, err
}

// snapshotLocked must run on the loop.
func (app *Application) snapshotLocked() Snapshot {
	snap := Snapshot{
		Indicators: app.reader.Indicators(),
		Report:     app.report.Snapshot(),
		Pending:    app.queue.Len(),
		History:    app.history.Entries(),
	}
	if app.host != nil {
		snap.Text = app.host.Text()
	}
	for u := range app.held {
		snap.Held = append(snap.Held, u)
	}
	slices.Sort(snap.Held)
	app.locks.Each(func(c *capslock.Controller) {
		cfg := c.Config()
		snap.Locks = append(snap.Locks, LockState{
			Index:         cfg.Index,
			Name:          cfg.Name,
			Label:         cfg.Label(),
			Policies:      cfg.Policies(),
			Lock:          cfg.LockIndicator(),
			Active:        c.Active(),
			JustActivated: c.JustActivated(),
		})
	})
	return snap
}

// Drain waits until every queued key has been emitted and the host has
// processed every report.
func (app *Application) Drain(ctx context.Context) error {
	if !app.running.Load() {
		return NewOperationError("drain", "", ErrNotRunning)
	}
	for {
		if err := app.queue.Wait(ctx); err != nil {
			return NewOperationError("drain", "", err)
		}
		if app.host != nil {
			if err := app.host.Wait(ctx); err != nil {
				return NewOperationError("drain", "", err)
			}
		}

		settled := false
		err := app.do(ctx, "drain", "", func(context.Context) error {
			settled = app.queue.Idle() && (app.host == nil || app.host.Idle())
			return nil
		})
		if err != nil {
			return err
		}
		if settled {
			return nil
		}
	}
}
