package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lockkeys/internal/behavior"
	"github.com/dshills/lockkeys/internal/behavior/queue"
	"github.com/dshills/lockkeys/internal/runloop"
)

type call struct {
	binding behavior.Binding
	press   bool
	at      time.Time
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) Invoke(_ context.Context, b behavior.Binding, _ behavior.BindingEvent, pressed bool) (behavior.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{binding: b, press: pressed, at: time.Now()})
	return behavior.Opaque, nil
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func startLoop(t *testing.T) *runloop.Loop {
	t.Helper()
	loop := runloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

func TestQueueRunsInOrderWithWait(t *testing.T) {
	loop := startLoop(t)
	rec := &recorder{}
	q := queue.New(loop, rec)

	ctx := context.Background()
	caps := behavior.Binding{Behavior: behavior.KeyPressName, Param1: 0x00070039}
	hold := 20 * time.Millisecond

	require.NoError(t, q.Add(ctx, behavior.BindingEvent{}, caps, true, hold))
	require.NoError(t, q.Add(ctx, behavior.BindingEvent{}, caps, false, 0))

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, q.Wait(waitCtx))

	calls := rec.snapshot()
	require.Len(t, calls, 2)
	assert.True(t, calls[0].press)
	assert.False(t, calls[1].press)
	assert.GreaterOrEqual(t, calls[1].at.Sub(calls[0].at), hold)
	assert.Equal(t, 2, q.Processed())
	assert.True(t, q.Idle())
	assert.Equal(t, 0, q.Len())
}

func TestQueueZeroWaitRunsBackToBack(t *testing.T) {
	rec := &recorder{}
	q := queue.New(runloop.Inline{}, rec)

	b := behavior.Binding{Behavior: "x"}
	for i := 0; i < 4; i++ {
		require.NoError(t, q.Add(context.Background(), behavior.BindingEvent{Position: uint32(i)}, b, i%2 == 0, 0))
	}

	assert.Len(t, rec.snapshot(), 4)
	assert.True(t, q.Idle())
	require.NoError(t, q.Wait(context.Background()))
}

func TestQueueStop(t *testing.T) {
	loop := startLoop(t)
	rec := &recorder{}
	q := queue.New(loop, rec)

	b := behavior.Binding{Behavior: "x"}
	require.NoError(t, q.Add(context.Background(), behavior.BindingEvent{}, b, true, time.Hour))
	require.NoError(t, q.Add(context.Background(), behavior.BindingEvent{}, b, false, 0))

	require.Eventually(t, func() bool { return q.Processed() == 1 }, time.Second, time.Millisecond)

	q.Stop()
	require.NoError(t, q.Wait(context.Background()))
	assert.Equal(t, 0, q.Len())
	assert.Len(t, rec.snapshot(), 1)

	err := q.Add(context.Background(), behavior.BindingEvent{}, b, true, 0)
	assert.ErrorIs(t, err, queue.ErrStopped)
}

func TestQueueWaitHonoursContext(t *testing.T) {
	loop := startLoop(t)
	q := queue.New(loop, &recorder{})

	require.NoError(t, q.Add(context.Background(), behavior.BindingEvent{}, behavior.Binding{Behavior: "x"}, true, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)
	q.Stop()
}

func TestQueueAddOnStoppedLoop(t *testing.T) {
	loop := runloop.New()
	loop.Stop()
	q := queue.New(loop, &recorder{})

	err := q.Add(context.Background(), behavior.BindingEvent{}, behavior.Binding{Behavior: "x"}, true, 0)
	assert.ErrorIs(t, err, runloop.ErrStopped)
	assert.True(t, q.Idle())
}

func TestQueueReentrantAdd(t *testing.T) {
	var q *queue.Queue
	var order []string
	inv := invokerFunc(func(ctx context.Context, b behavior.Binding, _ behavior.BindingEvent, pressed bool) (behavior.Status, error) {
		order = append(order, b.Behavior)
		if b.Behavior == "outer" {
			_ = q.Add(ctx, behavior.BindingEvent{}, behavior.Binding{Behavior: "inner"}, true, 0)
		}
		return behavior.Opaque, nil
	})
	q = queue.New(runloop.Inline{}, inv)

	require.NoError(t, q.Add(context.Background(), behavior.BindingEvent{}, behavior.Binding{Behavior: "outer"}, true, 0))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type invokerFunc func(ctx context.Context, b behavior.Binding, ev behavior.BindingEvent, pressed bool) (behavior.Status, error)

func (f invokerFunc) Invoke(ctx context.Context, b behavior.Binding, ev behavior.BindingEvent, pressed bool) (behavior.Status, error) {
	return f(ctx, b, ev, pressed)
}
