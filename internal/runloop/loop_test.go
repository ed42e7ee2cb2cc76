package runloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, func()) {
	t.Helper()
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Run(ctx)
	}()
	return l, func() {
		cancel()
		wg.Wait()
	}
}

func TestLoop_RunsInPostOrder(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, l.Post(func() { got = append(got, i) }))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Sync(ctx, func() {}))

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_SyncWaits(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	ran := false
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Sync(ctx, func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_StopRejectsWork(t *testing.T) {
	l := New()
	l.Stop()
	l.Stop()
	assert.ErrorIs(t, l.Post(func() {}), ErrStopped)
	assert.ErrorIs(t, l.Sync(context.Background(), func() {}), ErrStopped)
}

func TestLoop_RunTwice(t *testing.T) {
	l, stop := startLoop(t)
	defer stop()

	require.Eventually(t, l.IsRunning, time.Second, time.Millisecond)
	assert.ErrorIs(t, l.Run(context.Background()), ErrAlreadyRunning)
}

func TestInline(t *testing.T) {
	ran := false
	require.NoError(t, Inline{}.Post(func() { ran = true }))
	assert.True(t, ran)
}
