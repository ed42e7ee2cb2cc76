// Package queue serializes synthetic binding transitions.
//
// Behaviors that need to emit keys of their own (for example a lock
// behavior tapping Caps Lock on the host) submit press and release items
// to a Queue instead of invoking other behaviors directly. Items run in
// FIFO order on the run loop; after each item the queue waits for the
// item's duration before running the next one, so a press followed by a
// release reaches the host as a tap of known length.
package queue
