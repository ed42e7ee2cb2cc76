// Package app wires the lock behaviors into a running keyboard.
//
// An Application owns one run loop and everything that executes on it:
// the event bus, the behavior and lock registries, the emission queue,
// the keyboard report, the host indicator store and the output endpoint.
// Callers feed it physical key transitions (KeyDown, KeyUp) or drive
// behaviors by name (PressBinding, ReleaseBinding); each call is executed
// on the loop and returns once the handlers have run. Synthetic keys
// queued by the behaviors complete later; Drain waits for them.
//
// Replay scripts exercise an Application deterministically:
//
//	press F4          # capslock_word
//	release F4
//	type hello
//	tap SPACE
//	drain
//	expect lock off
//	expect text "HELLO "
package app
