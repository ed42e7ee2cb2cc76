package event

import (
	"sort"
	"sync"
)

// registry holds subscriptions in priority order.
// It is safe for concurrent access.
type registry struct {
	mu   sync.RWMutex
	subs []*subscription
	byID map[string]*subscription
}

func newRegistry() *registry {
	return &registry{
		byID: make(map[string]*subscription),
	}
}

// add inserts a subscription keeping priority order; ties keep insertion order.
func (r *registry) add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)
	sort.SliceStable(r.subs, func(i, j int) bool {
		pi, pj := r.subs[i].config.Priority, r.subs[j].config.Priority
		if pi != pj {
			return pi < pj
		}
		return r.subs[i].seq < r.subs[j].seq
	})
	r.byID[sub.id] = sub
}

// remove removes a subscription by ID.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			break
		}
	}
	return true
}

// match returns a snapshot of the subscriptions whose pattern selects t.
func (r *registry) match(t Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription
	for _, s := range r.subs {
		if t.Matches(s.topic) {
			out = append(out, s)
		}
	}
	return out
}

// countActive returns the number of active subscriptions.
func (r *registry) countActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.subs {
		if s.IsActive() {
			n++
		}
	}
	return n
}
