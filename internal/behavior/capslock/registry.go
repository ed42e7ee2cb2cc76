package capslock

import "fmt"

// Registry is a fixed-size table of controllers indexed by configuration
// order. Empty slots are skipped.
type Registry struct {
	slots []*Controller
}

// NewRegistry creates a registry with size slots.
func NewRegistry(size int) *Registry {
	if size < 0 {
		size = 0
	}
	return &Registry{slots: make([]*Controller, size)}
}

// Register places c in the slot named by its config index.
func (r *Registry) Register(c *Controller) error {
	i := c.cfg.Index
	if i < 0 || i >= len(r.slots) {
		return fmt.Errorf("register %s at %d (size %d): %w", c.Name(), i, len(r.slots), ErrIndexOutOfRange)
	}
	if r.slots[i] != nil {
		return fmt.Errorf("register %s at %d (held by %s): %w", c.Name(), i, r.slots[i].Name(), ErrSlotTaken)
	}
	r.slots[i] = c
	return nil
}

// Get returns the controller at index i.
func (r *Registry) Get(i int) (*Controller, bool) {
	if i < 0 || i >= len(r.slots) || r.slots[i] == nil {
		return nil, false
	}
	return r.slots[i], true
}

// Lookup returns the controller registered under name.
func (r *Registry) Lookup(name string) (*Controller, bool) {
	for _, c := range r.slots {
		if c != nil && c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Each calls fn for every registered controller in index order.
func (r *Registry) Each(fn func(c *Controller)) {
	for _, c := range r.slots {
		if c != nil {
			fn(c)
		}
	}
}

// Size returns the number of slots.
func (r *Registry) Size() int {
	return len(r.slots)
}

// Controllers returns the registered controllers in index order.
func (r *Registry) Controllers() []*Controller {
	out := make([]*Controller, 0, len(r.slots))
	r.Each(func(c *Controller) {
		out = append(out, c)
	})
	return out
}
