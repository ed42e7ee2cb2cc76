package indicators

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/runloop"
)

// DefaultPollInterval is how often Poller samples its source.
const DefaultPollInterval = 50 * time.Millisecond

// Poller samples a Reader and mirrors it into a Store on the run loop.
type Poller struct {
	src      Reader
	store    *Store
	exec     runloop.Executor
	interval time.Duration
	log      logr.Logger
}

// NewPoller creates a poller. A zero interval selects DefaultPollInterval.
func NewPoller(src Reader, store *Store, exec runloop.Executor, interval time.Duration, log logr.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		src:      src,
		store:    store,
		exec:     exec,
		interval: interval,
		log:      log,
	}
}

// Poll samples the source once.
func (p *Poller) Poll(ctx context.Context) error {
	ind := p.src.Indicators()
	return p.exec.Post(func() {
		if err := p.store.Set(ctx, ind); err != nil {
			p.log.Error(err, "publish indicators")
		}
	})
}

// Run polls until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Poll(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil {
				return err
			}
		}
	}
}
