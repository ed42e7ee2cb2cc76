package indicators

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/dshills/lockkeys/internal/event"
	"github.com/dshills/lockkeys/internal/event/events"
	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// ErrUnsupported is returned by NewOSReader on platforms without a
// host indicator source.
var ErrUnsupported = errors.New("host indicators unsupported on this platform")

// Reader reports the host's current lock indicators.
type Reader interface {
	Indicators() hid.Indicators
}

// ReaderFunc adapts a function to Reader.
type ReaderFunc func() hid.Indicators

// Indicators implements Reader.
func (f ReaderFunc) Indicators() hid.Indicators {
	return f()
}

// Publisher raises events on the bus.
type Publisher interface {
	Publish(ctx context.Context, ev any) (event.Propagation, error)
}

// Store holds the indicator mask reported by the host.
// Indicators may be called from any goroutine; Set and Toggle publish on
// the bus and belong on the run loop.
type Store struct {
	bus     Publisher
	log     logr.Logger
	current atomic.Uint32
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store logger.
func WithLogger(log logr.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithInitial sets the starting indicator mask.
func WithInitial(ind hid.Indicators) StoreOption {
	return func(s *Store) {
		s.current.Store(uint32(ind))
	}
}

// NewStore creates a store. bus may be nil, in which case changes are
// not published.
func NewStore(bus Publisher, opts ...StoreOption) *Store {
	s := &Store{
		bus: bus,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Indicators implements Reader.
func (s *Store) Indicators() hid.Indicators {
	return hid.Indicators(s.current.Load())
}

// Set replaces the indicator mask. It publishes IndicatorsChanged when the
// mask differs from the previous one.
func (s *Store) Set(ctx context.Context, ind hid.Indicators) error {
	prev := hid.Indicators(s.current.Swap(uint32(ind)))
	if prev == ind {
		return nil
	}

	s.log.V(logging.DEBUG).Info("host indicators changed", "from", prev.String(), "to", ind.String())

	if s.bus == nil {
		return nil
	}
	_, err := s.bus.Publish(ctx, events.NewIndicatorsChanged(prev, ind))
	return err
}

// Toggle flips the given indicator bits.
func (s *Store) Toggle(ctx context.Context, ind hid.Indicators) error {
	return s.Set(ctx, s.Indicators().Toggle(ind))
}
