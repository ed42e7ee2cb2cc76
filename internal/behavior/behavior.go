package behavior

import (
	"context"
	"fmt"
	"time"
)

// Status is returned by a behavior after it handled a transition.
type Status int

const (
	// Opaque means the behavior consumed the transition.
	Opaque Status = iota
	// Transparent means the transition should fall through to the next
	// layer.
	Transparent
)

// String returns a human readable status.
func (s Status) String() string {
	switch s {
	case Opaque:
		return "opaque"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Binding attaches a named behavior and its parameters to a key position.
type Binding struct {
	Behavior string
	Param1   uint32
	Param2   uint32
}

// String renders the binding in devicetree-like form: "&name p1 p2".
func (b Binding) String() string {
	return fmt.Sprintf("&%s 0x%X 0x%X", b.Behavior, b.Param1, b.Param2)
}

// BindingEvent is the context of a binding press or release.
type BindingEvent struct {
	// Position is the physical key position that triggered the binding.
	Position uint32
	// Layer is the keymap layer the binding was resolved on.
	Layer int
	// Timestamp is when the transition occurred.
	Timestamp time.Time
}

// Behavior is a bindable action with a press and a release half.
type Behavior interface {
	Pressed(ctx context.Context, b Binding, ev BindingEvent) (Status, error)
	Released(ctx context.Context, b Binding, ev BindingEvent) (Status, error)
}

// Funcs adapts two functions to the Behavior interface. A nil function
// is treated as an opaque no-op.
type Funcs struct {
	OnPressed  func(ctx context.Context, b Binding, ev BindingEvent) (Status, error)
	OnReleased func(ctx context.Context, b Binding, ev BindingEvent) (Status, error)
}

// Pressed implements Behavior.
func (f Funcs) Pressed(ctx context.Context, b Binding, ev BindingEvent) (Status, error) {
	if f.OnPressed == nil {
		return Opaque, nil
	}
	return f.OnPressed(ctx, b, ev)
}

// Released implements Behavior.
func (f Funcs) Released(ctx context.Context, b Binding, ev BindingEvent) (Status, error) {
	if f.OnReleased == nil {
		return Opaque, nil
	}
	return f.OnReleased(ctx, b, ev)
}
