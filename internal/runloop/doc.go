// Package runloop serialises all keyboard work onto one goroutine.
//
// Binding actuation, bus delivery and queued key emission all post closures
// to a Loop; the Loop runs them one at a time, to completion, in post
// order. Code running on the loop therefore needs no locking.
package runloop
