// Package endpoint delivers keyboard reports to a host.
//
// Listener sits at the end of the keycode event chain: it applies each
// KeycodeStateChanged event to the keyboard report and sends the new
// report to an Endpoint. Two endpoints exist. VirtualHost is an in-process
// host that behaves like an operating system: it flips its lock
// indicators when a lock key goes down and records the text it would
// type. OSBridge injects the keys into the real operating system.
package endpoint
