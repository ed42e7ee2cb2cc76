package runloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrStopped is returned when work is posted to a stopped loop.
	ErrStopped = errors.New("run loop stopped")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("run loop already running")
)

// Executor runs closures in order without overlap.
type Executor interface {
	Post(fn func()) error
}

// Loop is a single-goroutine executor.
type Loop struct {
	tasks   chan func()
	stop    chan struct{}
	stopped atomic.Bool
	running atomic.Bool
	once    sync.Once
}

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets how many closures may be pending before Post blocks.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan func(), n)
		}
	}
}

// New creates a loop. Call Run to start processing.
func New(opts ...Option) *Loop {
	l := &Loop{
		tasks: make(chan func(), 256),
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post schedules fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) error {
	if l.stopped.Load() {
		return ErrStopped
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.stop:
		return ErrStopped
	}
}

// Sync runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Sync(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return ErrStopped
	}
}

// Run processes posted closures until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stop:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run. Pending closures are discarded.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.stopped.Store(true)
		close(l.stop)
	})
}

// IsRunning reports whether Run is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Inline is an Executor that runs closures immediately in the caller's
// goroutine. Tests and single-threaded tools use it in place of a Loop.
type Inline struct{}

// Post runs fn immediately.
func (Inline) Post(fn func()) error {
	fn()
	return nil
}
