package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/event/events"
)

// History keeps the most recent bus events as display lines.
type History struct {
	mu      sync.Mutex
	entries []string
	next    int
	full    bool
}

// NewHistory creates a history holding up to size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{entries: make([]string, size)}
}

// OnEvent implements event.Listener.
func (h *History) OnEvent(_ context.Context, ev any) event.Propagation {
	h.add(describe(ev))
	return event.Bubble
}

func (h *History) add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.next] = line
	h.next = (h.next + 1) % len(h.entries)
	if h.next == 0 {
		h.full = true
	}
}

// Entries returns the recorded lines, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		return append([]string(nil), h.entries[:h.next]...)
	}
	out := make([]string, 0, len(h.entries))
	out = append(out, h.entries[h.next:]...)
	return append(out, h.entries[:h.next]...)
}

func describe(ev any) string {
	if k, ok := events.AsKeycodeStateChanged(ev); ok {
		state := "up"
		if k.State {
			state = "down"
		}
		return fmt.Sprintf("%s %s %s", events.TopicKeycodeStateChanged, k.Keycode(), state)
	}
	if c, ok := event.Payload[events.IndicatorsChanged](ev); ok {
		return fmt.Sprintf("%s %s -> %s", events.TopicIndicatorsChanged, c.Previous, c.Current)
	}
	if tp, ok := ev.(event.TopicProvider); ok {
		return string(tp.EventTopic())
	}
	return fmt.Sprintf("%T", ev)
}
