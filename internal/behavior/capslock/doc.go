// Package capslock implements lock-key behaviors that keep the host's
// lock indicator in step with a binding.
//
// # Model
//
// Each configured behavior is a Controller with two pieces of state:
// whether the behavior considers the lock armed (Active) and whether it
// was armed by the current press (JustActivated). The host's lock
// indicator is a separate source of truth. The controller never assumes
// the host followed its last request; every transition re-reads the
// indicator and taps the lock key only when the host disagrees with the
// target.
//
// Policies:
//
//   - EnableOnPress arms the lock when the binding is pressed.
//   - DisableOnRelease disarms it when the binding is released.
//   - DisableOnNextRelease disarms it on the first release after the one
//     that armed it. DisableOnRelease wins when both are set.
//   - DisableOnKeys lists keys that disarm the lock when pressed. A key
//     item matches when its required modifiers are a subset of the
//     modifiers in effect.
//
// # Observer
//
// The Observer listens to every key-down on the bus. For each armed
// controller it either notices that the lock key itself was pressed
// while the host lock is on (the host is about to turn it off, so the
// controller only updates its bookkeeping) or checks the disable keys and
// disarms the controller on a match. It never stops propagation.
//
// # Presets
//
// Presets returns the stock behaviors: capslock_on, capslock_off,
// capslock_hold, capslock_word and capslock_line, each with a _mac
// variant that holds the lock key longer.
package capslock
