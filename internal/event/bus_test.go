package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	N int
}

const testTopic Topic = "test.value"

func TestBus_SubscribeValidation(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe(testTopic, nil); err != ErrNilListener {
		t.Errorf("expected ErrNilListener, got %v", err)
	}
	if _, err := bus.SubscribeFunc("", func(context.Context, any) Propagation { return Bubble }); err != ErrInvalidTopic {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestBus_PublishInvalidEvent(t *testing.T) {
	bus := NewBus()
	_, err := bus.Publish(context.Background(), struct{}{})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = bus.Publish(context.Background(), NewEvent[int]("", 1, "test"))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestBus_PriorityOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	record := func(name string) ListenerFunc {
		return func(context.Context, any) Propagation {
			order = append(order, name)
			return Bubble
		}
	}

	_, _ = bus.Subscribe(testTopic, record("low"), WithPriority(PriorityLow))
	_, _ = bus.Subscribe(testTopic, record("normal-1"))
	_, _ = bus.Subscribe(testTopic, record("critical"), WithPriority(PriorityCritical))
	_, _ = bus.Subscribe(testTopic, record("normal-2"))

	p, err := bus.Publish(context.Background(), NewEvent(testTopic, testPayload{N: 1}, "test"))
	require.NoError(t, err)
	assert.Equal(t, Bubble, p)
	assert.Equal(t, []string{"critical", "normal-1", "normal-2", "low"}, order)
}

func TestBus_CaptureStopsDelivery(t *testing.T) {
	bus := NewBus()
	var reached bool

	_, _ = bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation { return Capture }, WithPriority(PriorityHigh))
	_, _ = bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation {
		reached = true
		return Bubble
	})

	p, err := bus.Publish(context.Background(), NewEvent(testTopic, testPayload{}, "test"))
	require.NoError(t, err)
	assert.Equal(t, Capture, p)
	assert.False(t, reached, "listener after Capture must not run")
	assert.Equal(t, uint64(1), bus.Stats().EventsCaptured)
}

func TestBus_WildcardTopics(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"keycode.state_changed", "keycode.state_changed", true},
		{"keycode.state_changed", "keycode.*", true},
		{"keycode.state_changed", "*", true},
		{"indicators.changed", "keycode.*", false},
		{"keycode", "keycode.*", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("Topic(%q).Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestBus_SubscribePayload(t *testing.T) {
	bus := NewBus()
	var got []int

	_, err := SubscribePayload(bus, "test.*", func(_ context.Context, p testPayload) Propagation {
		got = append(got, p.N)
		return Bubble
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, _ = bus.Publish(ctx, NewEvent(testTopic, testPayload{N: 7}, "test"))
	_, _ = bus.Publish(ctx, NewEvent[string]("test.other", "not a payload", "test"))

	assert.Equal(t, []int{7}, got)
}

func TestBus_Filter(t *testing.T) {
	bus := NewBus()
	calls := 0

	_, _ = bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation {
		calls++
		return Bubble
	}, WithFilter(func(ev any) bool {
		p, _ := Payload[testPayload](ev)
		return p.N > 1
	}))

	ctx := context.Background()
	_, _ = bus.Publish(ctx, NewEvent(testTopic, testPayload{N: 1}, "test"))
	_, _ = bus.Publish(ctx, NewEvent(testTopic, testPayload{N: 2}, "test"))
	_, _ = bus.Publish(ctx, NewEvent(testTopic, testPayload{N: 3}, "test"))

	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(2), bus.Stats().EventsDelivered)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub, err := bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation {
		calls++
		return Bubble
	})
	require.NoError(t, err)

	ctx := context.Background()
	ev := NewEvent(testTopic, testPayload{}, "test")

	_, _ = bus.Publish(ctx, ev)
	assert.Equal(t, 1, calls)

	require.NoError(t, bus.Unsubscribe(sub))
	assert.Equal(t, SubscriptionStateCancelled, sub.State())
	_, _ = bus.Publish(ctx, ev)
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, bus.Unsubscribe(sub), ErrSubscriptionNotFound)
	assert.ErrorIs(t, bus.Unsubscribe(nil), ErrInvalidSubscription)
}

func TestBus_PanicIsolation(t *testing.T) {
	var reported error
	bus := NewBus(WithPanicHandler(func(_ any, recovered any, _ []byte) {
		reported, _ = recovered.(error)
	}))

	after := false
	_, _ = bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation { panic("boom") }, WithPriority(PriorityHigh))
	_, _ = bus.SubscribeFunc(testTopic, func(context.Context, any) Propagation {
		after = true
		return Bubble
	})

	p, err := bus.Publish(context.Background(), NewEvent(testTopic, testPayload{}, "test"))
	require.NoError(t, err)
	assert.Equal(t, Bubble, p)
	assert.True(t, after, "panicking listener must not stop delivery")
	assert.True(t, errors.Is(reported, ErrListenerPanic))
	assert.Equal(t, uint64(1), bus.Stats().ListenerPanics)
}

func TestEventMetadata(t *testing.T) {
	ev := NewEvent(testTopic, testPayload{N: 3}, "unit")
	assert.NotEmpty(t, ev.Metadata.ID)
	assert.Equal(t, "unit", ev.Metadata.Source)
	assert.False(t, ev.Metadata.Timestamp.IsZero())
	assert.Equal(t, testTopic, ev.EventTopic())

	other := NewEvent(testTopic, testPayload{N: 3}, "unit")
	assert.NotEqual(t, ev.Metadata.ID, other.Metadata.ID)

	caused := other.WithCausation(ev.Metadata.ID)
	assert.Equal(t, ev.Metadata.ID, caused.Metadata.CausationID)
	assert.Empty(t, other.Metadata.CausationID)
}

func TestPayload(t *testing.T) {
	p, ok := Payload[testPayload](NewEvent(testTopic, testPayload{N: 4}, "x"))
	assert.True(t, ok)
	assert.Equal(t, 4, p.N)

	p, ok = Payload[testPayload](testPayload{N: 5})
	assert.True(t, ok)
	assert.Equal(t, 5, p.N)

	_, ok = Payload[testPayload]("nope")
	assert.False(t, ok)
}

func TestPropagationAndPriorityStrings(t *testing.T) {
	assert.Equal(t, "bubble", Bubble.String())
	assert.Equal(t, "capture", Capture.String())
	assert.Equal(t, "critical", PriorityCritical.String())
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "active", SubscriptionStateActive.String())
}
