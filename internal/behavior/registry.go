package behavior

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownBehavior is returned when a binding names a behavior that
	// was never registered.
	ErrUnknownBehavior = errors.New("unknown behavior")

	// ErrDuplicateBehavior is returned when a name is registered twice.
	ErrDuplicateBehavior = errors.New("behavior already registered")

	// ErrEmptyName is returned when registering under an empty name.
	ErrEmptyName = errors.New("behavior name is empty")
)

// Registry maps behavior names to their implementations.
type Registry struct {
	mu        sync.RWMutex
	behaviors map[string]Behavior
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		behaviors: make(map[string]Behavior),
	}
}

// Register adds a behavior under name.
func (r *Registry) Register(name string, b Behavior) error {
	if name == "" {
		return ErrEmptyName
	}
	if b == nil {
		return fmt.Errorf("register %q: nil behavior", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.behaviors[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateBehavior)
	}
	r.behaviors[name] = b
	return nil
}

// Get returns the behavior registered under name.
func (r *Registry) Get(name string) (Behavior, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.behaviors[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBehavior)
	}
	return b, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.behaviors[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the press or release half of the binding's behavior.
func (r *Registry) Invoke(ctx context.Context, b Binding, ev BindingEvent, pressed bool) (Status, error) {
	bh, err := r.Get(b.Behavior)
	if err != nil {
		return Opaque, err
	}
	if pressed {
		return bh.Pressed(ctx, b, ev)
	}
	return bh.Released(ctx, b, ev)
}
