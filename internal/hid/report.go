package hid

// MaxKeys is the number of non-modifier keys a boot keyboard report carries.
const MaxKeys = 6

// Report tracks the keyboard report sent to the host: explicitly held
// modifiers, implicit modifiers of the most recent keycode, and pressed keys.
//
// Report is not safe for concurrent use; it is owned by the run loop.
type Report struct {
	explicit Modifiers
	implicit Modifiers
	keys     []Usage
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{keys: make([]Usage, 0, MaxKeys)}
}

// Press adds a keycode to the report. Modifier keys set explicit modifier
// bits; other keys are added to the key array and their implicit modifiers
// become active. Returns false if the key array is full.
func (r *Report) Press(kc Keycode) bool {
	u := kc.Usage()
	if u.IsModifier() {
		r.explicit = r.explicit.With(u.Modifier())
		return true
	}
	r.implicit = kc.Modifiers()
	for _, k := range r.keys {
		if k == u {
			return true
		}
	}
	if len(r.keys) >= MaxKeys {
		return false
	}
	r.keys = append(r.keys, u)
	return true
}

// Release removes a keycode from the report.
func (r *Report) Release(kc Keycode) {
	u := kc.Usage()
	if u.IsModifier() {
		r.explicit = r.explicit.Without(u.Modifier())
		return
	}
	for i, k := range r.keys {
		if k == u {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	if kc.Modifiers() != ModNone && r.implicit == kc.Modifiers() {
		r.implicit = ModNone
	}
}

// ExplicitModifiers returns the modifiers held through modifier keys.
func (r *Report) ExplicitModifiers() Modifiers {
	return r.explicit
}

// Modifiers returns the modifier byte as sent to the host.
func (r *Report) Modifiers() Modifiers {
	return r.explicit | r.implicit
}

// Keys returns a copy of the pressed non-modifier keys in press order.
func (r *Report) Keys() []Usage {
	out := make([]Usage, len(r.keys))
	copy(out, r.keys)
	return out
}

// Pressed reports whether u is currently pressed.
func (r *Report) Pressed(u Usage) bool {
	if u.IsModifier() {
		return r.explicit.Has(u.Modifier())
	}
	for _, k := range r.keys {
		if k == u {
			return true
		}
	}
	return false
}

// Clear releases everything.
func (r *Report) Clear() {
	r.explicit = ModNone
	r.implicit = ModNone
	r.keys = r.keys[:0]
}

// Snapshot is an immutable copy of a Report.
type Snapshot struct {
	Modifiers Modifiers
	Keys      []Usage
}

// Snapshot returns the current report contents.
func (r *Report) Snapshot() Snapshot {
	return Snapshot{Modifiers: r.Modifiers(), Keys: r.Keys()}
}
