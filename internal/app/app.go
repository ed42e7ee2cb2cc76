package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/behavior/capslock"
	"github.com/dshills/lockkeys/internal/behavior/queue"
	"github.com/dshills/lockkeys/internal/config"
	"github.com/dshills/lockkeys/internal/endpoint"
	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/indicators"
	"github.com/dshills/lockkeys/internal/runloop"
)

// DefaultHistorySize is how many bus events Snapshot reports.
const DefaultHistorySize = 16

// Application is the central coordinator. It owns the run loop and every
// component that runs on it.
type Application struct {
	opts Options
	log  logr.Logger

	// Core infrastructure
	loop *runloop.Loop
	bus  *event.Bus

	// Keyboard side
	behaviors *behavior.Registry
	queue     *queue.Queue
	report    *hid.Report
	locks     *capslock.Registry
	observer  *capslock.Observer
	triggers  map[hid.Usage]behavior.Binding
	held      map[hid.Usage]heldBinding

	// Host side
	store    *indicators.Store
	reader   indicators.Reader
	host     *endpoint.VirtualHost
	endpoint endpoint.Endpoint
	listener *endpoint.Listener
	poller   *indicators.Poller

	history *History

	// State
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	done    chan struct{}
}

// Options configures the application.
type Options struct {
	// Config is the resolved configuration. Required.
	Config *config.Resolved

	// Logger receives all component logs. Defaults to discard.
	Logger logr.Logger

	// Endpoint replaces the endpoint selected by Config.
	Endpoint endpoint.Endpoint

	// Initial is the starting indicator mask of the virtual host.
	Initial hid.Indicators

	// HistorySize bounds Snapshot().History. Defaults to DefaultHistorySize.
	HistorySize int

	// Clock stamps binding events. Defaults to time.Now.
	Clock func() time.Time
}

type heldBinding struct {
	binding behavior.Binding
	event   behavior.BindingEvent
}

// New creates an Application. Call Start before sending keys.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, &InitError{Component: "config", Err: fmt.Errorf("nil configuration")}
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultHistorySize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	app := &Application{
		opts:     opts,
		log:      opts.Logger,
		triggers: make(map[hid.Usage]behavior.Binding),
		held:     make(map[hid.Usage]heldBinding),
		ctx:      context.Background(),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.opts.Config

	// 1. Run loop and event bus
	app.loop = runloop.New()
	busLog := app.log.WithName("bus")
	app.bus = event.NewBus(event.WithPanicHandler(func(ev any, recovered any, _ []byte) {
		busLog.Error(fmt.Errorf("%v", recovered), "listener panicked", "event", fmt.Sprintf("%T", ev))
	}))

	// 2. Keyboard report and host indicators
	app.report = hid.NewReport()
	app.store = indicators.NewStore(app.bus,
		indicators.WithInitial(app.opts.Initial),
		indicators.WithLogger(app.log.WithName("indicators")))
	app.reader = app.store

	// 3. Output endpoint
	if err := app.initEndpoint(cfg); err != nil {
		return err
	}
	app.listener = endpoint.NewListener(app.report, app.endpoint, app.log.WithName("hid"))
	if err := app.listener.Attach(app.bus); err != nil {
		return &InitError{Component: "hid listener", Err: err}
	}

	// 4. Behaviors and the emission queue
	app.behaviors = behavior.NewRegistry()
	if err := app.behaviors.Register(behavior.KeyPressName, behavior.NewKeyPress(app.bus)); err != nil {
		return &InitError{Component: "behaviors", Err: err}
	}
	app.queue = queue.New(app.loop, app.behaviors,
		queue.WithLogger(app.log.WithName("queue")))

	// 5. Lock controllers
	size := 0
	for _, c := range cfg.Behaviors {
		if c.Index+1 > size {
			size = c.Index + 1
		}
	}
	app.locks = capslock.NewRegistry(size)
	lockLog := app.log.WithName("capslock")
	for _, c := range cfg.Behaviors {
		ctrl := capslock.NewController(c, app.reader, app.queue, lockLog)
		if err := app.locks.Register(ctrl); err != nil {
			return &InitError{Component: "capslock", Err: err}
		}
		if err := app.behaviors.Register(c.Name, ctrl); err != nil {
			return &InitError{Component: "capslock", Err: err}
		}
	}

	// 6. Observer, ahead of the HID listener
	app.observer = capslock.NewObserver(app.locks, app.report, lockLog)
	if _, err := app.observer.Attach(app.bus); err != nil {
		return &InitError{Component: "observer", Err: err}
	}

	// 7. Keymap
	for _, t := range cfg.Triggers {
		app.triggers[t.Key] = behavior.Binding{Behavior: t.Behavior}
	}

	// 8. History
	app.history = NewHistory(app.opts.HistorySize)
	if _, err := app.bus.Subscribe("*", app.history, event.WithPriority(event.PriorityLow)); err != nil {
		return &InitError{Component: "history", Err: err}
	}

	app.log.V(1).Info("application ready",
		"endpoint", string(cfg.Endpoint),
		"behaviors", len(cfg.Behaviors),
		"triggers", len(cfg.Triggers))
	return nil
}

func (app *Application) initEndpoint(cfg *config.Resolved) error {
	if app.opts.Endpoint != nil {
		app.endpoint = app.opts.Endpoint
		return nil
	}

	switch cfg.Endpoint {
	case endpoint.KindOS:
		src, err := indicators.NewOSReader()
		if err != nil {
			return &InitError{Component: "host indicators", Err: err}
		}
		bridge, err := endpoint.NewOSBridge(app.log.WithName("os"))
		if err != nil {
			return &InitError{Component: "os endpoint", Err: err}
		}
		app.reader = src
		app.endpoint = bridge
		app.poller = indicators.NewPoller(src, app.store, app.loop, cfg.PollInterval, app.log.WithName("poller"))
	default:
		app.host = endpoint.NewVirtualHost(app.store, app.loop,
			endpoint.WithLatency(cfg.Latency),
			endpoint.WithHostLogger(app.log.WithName("host")))
		app.endpoint = app.host
	}
	return nil
}

// Bus returns the application event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Locks returns the lock controller registry.
func (app *Application) Locks() *capslock.Registry {
	return app.locks
}

// Host returns the virtual host, or nil when another endpoint is in use.
func (app *Application) Host() *endpoint.VirtualHost {
	return app.host
}
