package endpoint

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/indicators"
	"github.com/dshills/lockkeys/internal/logging"
	"github.com/dshills/lockkeys/internal/runloop"
)

// VirtualHost is a simulated operating system. Lock keys flip the
// indicator store on their rising edge; printable keys are appended to a
// text buffer using the host's Caps Lock state and the report's Shift.
//
// With a latency set, each report is processed that long after Send on
// the executor, so indicator reads in between see the old state.
type VirtualHost struct {
	store   *indicators.Store
	exec    runloop.Executor
	latency time.Duration
	log     logr.Logger

	mu      sync.Mutex
	prev    []hid.Usage
	reports int
	text    strings.Builder
	pending int
	idle    chan struct{}
}

// HostOption configures a VirtualHost.
type HostOption func(*VirtualHost)

// WithLatency delays report processing.
func WithLatency(d time.Duration) HostOption {
	return func(h *VirtualHost) {
		h.latency = d
	}
}

// WithHostLogger sets the host logger.
func WithHostLogger(log logr.Logger) HostOption {
	return func(h *VirtualHost) {
		h.log = log
	}
}

// NewVirtualHost creates a host that reports its lock state through store.
func NewVirtualHost(store *indicators.Store, exec runloop.Executor, opts ...HostOption) *VirtualHost {
	h := &VirtualHost{
		store: store,
		exec:  exec,
		log:   logr.Discard(),
		idle:  make(chan struct{}),
	}
	close(h.idle)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send implements Endpoint.
func (h *VirtualHost) Send(ctx context.Context, r hid.Snapshot) error {
	h.mu.Lock()
	rising := diff(r.Keys, h.prev)
	h.prev = append(h.prev[:0], r.Keys...)
	h.reports++
	h.mu.Unlock()

	if len(rising) == 0 {
		return nil
	}

	if h.latency <= 0 {
		h.process(ctx, rising, r.Modifiers)
		return nil
	}

	h.begin()
	time.AfterFunc(h.latency, func() {
		err := h.exec.Post(func() {
			defer h.end()
			h.process(ctx, rising, r.Modifiers)
		})
		if err != nil {
			h.log.Error(err, "host dropped report")
			h.end()
		}
	})
	return nil
}

func (h *VirtualHost) process(ctx context.Context, rising []hid.Usage, mods hid.Modifiers) {
	for _, u := range rising {
		if ind, ok := hid.LockIndicator(u); ok {
			if err := h.store.Toggle(ctx, ind); err != nil {
				h.log.Error(err, "toggle indicator", "indicator", ind.String())
			}
			h.log.V(logging.DEBUG).Info("host lock toggled", "usage", u.String(), "indicators", h.store.Indicators().String())
			continue
		}
		h.typeKey(u, mods)
	}
}

func (h *VirtualHost) typeKey(u hid.Usage, mods hid.Modifiers) {
	caps := h.store.Indicators().Has(hid.IndicatorCapsLock)
	shift := mods.Has(hid.ModShift)

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case u >= hid.KeyA && u <= hid.KeyZ:
		r := rune('a' + (u.ID() - hid.KeyA.ID()))
		if caps != shift {
			r -= 'a' - 'A'
		}
		h.text.WriteRune(r)
	case u >= hid.KeyN1 && u <= hid.KeyN0:
		h.text.WriteByte("1234567890"[u.ID()-hid.KeyN1.ID()])
	case u == hid.KeySpace:
		h.text.WriteByte(' ')
	case u == hid.KeyEnter:
		h.text.WriteByte('\n')
	case u == hid.KeyTab:
		h.text.WriteByte('\t')
	case u == hid.KeyMinus:
		if shift {
			h.text.WriteByte('_')
		} else {
			h.text.WriteByte('-')
		}
	case u == hid.KeyBackspace:
		s := []rune(h.text.String())
		if len(s) > 0 {
			h.text.Reset()
			h.text.WriteString(string(s[:len(s)-1]))
		}
	}
}

// Indicators returns the host's lock state.
func (h *VirtualHost) Indicators() hid.Indicators {
	return h.store.Indicators()
}

// Text returns what the host has typed so far.
func (h *VirtualHost) Text() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.text.String()
}

// Reports returns how many reports were received.
func (h *VirtualHost) Reports() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reports
}

// Idle reports whether no delayed report is pending.
func (h *VirtualHost) Idle() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending == 0
}

// Wait blocks until every delayed report has been processed.
func (h *VirtualHost) Wait(ctx context.Context) error {
	h.mu.Lock()
	idle := h.idle
	h.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *VirtualHost) begin() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == 0 {
		h.idle = make(chan struct{})
	}
	h.pending++
}

func (h *VirtualHost) end() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending--
	if h.pending == 0 {
		close(h.idle)
	}
}
