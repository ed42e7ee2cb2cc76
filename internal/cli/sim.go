package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/lockkeys/internal/app"
	"github.com/dshills/lockkeys/internal/config"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/terminal"
)

// refreshInterval redraws the screen while queued keys complete.
const refreshInterval = 50 * time.Millisecond

func newSimCommand(v *viper.Viper) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "interactive simulator",
		Long: `
Open an interactive simulator. Typed keys go through the lock behaviors to
the configured endpoint; the screen shows the host lock indicators, the
state of every behavior, the text the host received and recent events.

Terminals do not report key releases, so trigger keys latch: the first
press holds the trigger down and the second releases it. Other keys tap.

Logs are discarded unless --log-file is given.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := loadSettings(v, io.Discard)
			if err != nil {
				return err
			}
			defer s.Close()
			log := s.Logger.WithName("app")

			a, err := app.New(app.Options{Config: s.Config, Logger: log})
			if err != nil {
				return err
			}

			term, err := terminal.New()
			if err != nil {
				return err
			}
			if err := term.Init(); err != nil {
				return err
			}
			defer term.Shutdown()

			if err := a.Start(ctx); err != nil {
				return err
			}
			sim := newSimulator(a, term, string(s.Config.Endpoint))
			defer func() { sim.app.Stop() }()

			if watch && s.Source != "defaults" {
				w, err := config.NewWatcher(s.Source, config.WithWatchLogger(s.Logger.WithName("watch")))
				if err != nil {
					return err
				}
				defer w.Close()
				sim.watch(w.Changes(), func(ctx context.Context) (*app.Application, error) {
					return rebuild(ctx, v, log)
				})
			}
			return runSim(ctx, sim)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
	return cmd
}

// rebuild starts a fresh application from the current config file.
func rebuild(ctx context.Context, v *viper.Viper, log logr.Logger) (*app.Application, error) {
	cfg, _, err := resolveConfig(v)
	if err != nil {
		return nil, err
	}
	a, err := app.New(app.Options{Config: cfg, Logger: log})
	if err != nil {
		return nil, err
	}
	if err := a.Start(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// simulator is the interactive session state. Only runSim's goroutine
// touches it, apart from the reload flag.
type simulator struct {
	app      *app.Application
	term     *terminal.Terminal
	endpoint string
	triggers map[string]hid.Usage
	status   string

	changes <-chan struct{}
	build   func(context.Context) (*app.Application, error)
	pending atomic.Bool
}

func newSimulator(a *app.Application, term *terminal.Terminal, endpoint string) *simulator {
	s := &simulator{term: term, endpoint: endpoint}
	s.setApp(a)
	return s
}

func (s *simulator) setApp(a *app.Application) {
	s.app = a
	s.triggers = make(map[string]hid.Usage)
	for _, c := range a.Locks().Controllers() {
		if u, ok := a.Trigger(c.Name()); ok {
			s.triggers[c.Name()] = u
		}
	}
}

// watch makes the simulator rebuild its application whenever changes
// delivers.
func (s *simulator) watch(changes <-chan struct{}, build func(context.Context) (*app.Application, error)) {
	s.changes = changes
	s.build = build
}

// reload swaps in a freshly built application. On failure the current one
// keeps running.
func (s *simulator) reload(ctx context.Context) {
	a, err := s.build(ctx)
	if err != nil {
		s.status = "reload: " + err.Error()
		return
	}
	s.app.Stop()
	s.setApp(a)
	s.status = "configuration reloaded"
}

func runSim(ctx context.Context, s *simulator) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				s.term.Refresh()
				return
			case <-s.changes:
				s.pending.Store(true)
				s.term.Refresh()
			case <-ticker.C:
				s.term.Refresh()
			}
		}
	}()

	s.draw(ctx)
	for {
		ev := s.term.PollEvent()
		if ctx.Err() != nil {
			return nil
		}
		switch ev.Type {
		case terminal.EventQuit:
			return nil
		case terminal.EventKey:
			s.key(ctx, ev.Key)
		case terminal.EventNone:
			continue
		}
		if s.pending.CompareAndSwap(true, false) {
			s.reload(ctx)
		}
		s.draw(ctx)
	}
}

// key taps ordinary keys and latches trigger keys.
func (s *simulator) key(ctx context.Context, kc hid.Keycode) {
	var err error
	if _, bound := s.app.Binding(kc.Usage()); bound {
		var snap app.Snapshot
		if snap, err = s.app.Snapshot(ctx); err == nil {
			if isHeld(snap, kc.Usage()) {
				err = s.app.KeyUp(ctx, kc)
			} else {
				err = s.app.KeyDown(ctx, kc)
			}
		}
	} else {
		err = s.app.TapKey(ctx, kc)
	}

	s.status = ""
	if err != nil {
		s.status = err.Error()
	}
}

func isHeld(snap app.Snapshot, u hid.Usage) bool {
	for _, h := range snap.Held {
		if h == u {
			return true
		}
	}
	return false
}

func (s *simulator) draw(ctx context.Context) {
	snap, err := s.app.Snapshot(ctx)
	if err != nil {
		return
	}
	s.term.Draw(terminal.View{
		Title:    "lockkeys",
		Endpoint: s.endpoint,
		Snapshot: snap,
		Triggers: s.triggers,
		Status:   s.status,
	})
}
