// Package terminal renders the simulator and turns terminal key presses
// into keyboard keycodes.
//
// Terminals report key presses but not key releases, so the simulator
// treats each key as a tap. Keys bound to lock behaviors latch instead:
// the first press holds the trigger down and the next one releases it.
package terminal
