package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/logging"
	"github.com/dshills/lockkeys/internal/runloop"
)

// ErrStopped is returned by Add after Stop.
var ErrStopped = errors.New("behavior queue stopped")

// Invoker runs one half of a binding.
type Invoker interface {
	Invoke(ctx context.Context, b behavior.Binding, ev behavior.BindingEvent, pressed bool) (behavior.Status, error)
}

// Item is one queued binding transition.
type Item struct {
	ID      string
	Event   behavior.BindingEvent
	Binding behavior.Binding
	Press   bool
	// Wait is how long the queue pauses after this item before running
	// the next one.
	Wait time.Duration
}

// Option configures a Queue.
type Option func(*Queue)

// WithLogger sets the queue logger.
func WithLogger(log logr.Logger) Option {
	return func(q *Queue) {
		q.log = log
	}
}

// WithContext sets the context passed to invoked behaviors.
func WithContext(ctx context.Context) Option {
	return func(q *Queue) {
		q.ctx = ctx
	}
}

// Queue is a FIFO of binding transitions executed on an Executor.
type Queue struct {
	exec    runloop.Executor
	invoker Invoker
	log     logr.Logger
	ctx     context.Context

	mu      sync.Mutex
	items   []Item
	busy    bool
	idle    chan struct{}
	timer   *time.Timer
	stopped bool
	done    int
}

// New creates a queue that runs items through invoker on exec.
func New(exec runloop.Executor, invoker Invoker, opts ...Option) *Queue {
	q := &Queue{
		exec:    exec,
		invoker: invoker,
		log:     logr.Discard(),
		ctx:     context.Background(),
		idle:    make(chan struct{}),
	}
	close(q.idle)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a transition. It returns once the item is queued; the item
// itself runs later on the executor.
func (q *Queue) Add(ctx context.Context, ev behavior.BindingEvent, b behavior.Binding, press bool, wait time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item := Item{
		ID:      uuid.NewString(),
		Event:   ev,
		Binding: b,
		Press:   press,
		Wait:    wait,
	}

	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return ErrStopped
	}
	q.items = append(q.items, item)
	start := !q.busy
	if start {
		q.busy = true
		q.idle = make(chan struct{})
	}
	q.mu.Unlock()

	q.log.V(logging.TRACE).Info("queued", "id", item.ID, "binding", b.String(), "press", press, "wait", wait)

	if start {
		if err := q.exec.Post(q.process); err != nil {
			q.abort()
			return fmt.Errorf("queue %s: %w", item.ID, err)
		}
	}
	return nil
}

// Len returns the number of items waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Processed returns how many items have run.
func (q *Queue) Processed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.done
}

// Idle reports whether nothing is queued or waiting.
func (q *Queue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return !q.busy
}

// Wait blocks until the queue is idle or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drops pending items and rejects further Adds.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.stopped = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.items = nil
	q.finishLocked()
}

func (q *Queue) process() {
	for {
		q.mu.Lock()
		if q.stopped || len(q.items) == 0 {
			q.finishLocked()
			q.mu.Unlock()
			return
		}
		item := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		q.run(item)

		if item.Wait > 0 {
			q.mu.Lock()
			if !q.stopped {
				q.timer = time.AfterFunc(item.Wait, q.resume)
			}
			q.mu.Unlock()
			return
		}
	}
}

func (q *Queue) run(item Item) {
	_, err := q.invoker.Invoke(q.ctx, item.Binding, item.Event, item.Press)

	q.mu.Lock()
	q.done++
	q.mu.Unlock()

	if err != nil {
		q.log.Error(err, "queued binding failed", "id", item.ID, "binding", item.Binding.String(), "press", item.Press)
		return
	}
	q.log.V(logging.TRACE).Info("ran", "id", item.ID, "binding", item.Binding.String(), "press", item.Press)
}

func (q *Queue) resume() {
	q.mu.Lock()
	q.timer = nil
	q.mu.Unlock()

	if err := q.exec.Post(q.process); err != nil {
		q.log.Error(err, "queue resume failed, dropping pending items")
		q.abort()
	}
}

func (q *Queue) abort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
	q.finishLocked()
}

func (q *Queue) finishLocked() {
	if q.busy {
		q.busy = false
		close(q.idle)
	}
}
