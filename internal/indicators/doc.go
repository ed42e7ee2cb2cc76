// Package indicators tracks the lock LEDs the host reports back to the
// keyboard.
//
// The host, not the keyboard, decides whether Caps Lock is on. A Reader
// exposes the last indicator bitmask the host reported. Store is the
// in-process Reader used with simulated hosts; it publishes an
// IndicatorsChanged event whenever the mask changes. OS readers query the
// machine's real lock state, and Poller copies such a reader into a Store
// so listeners see changes made outside this process.
package indicators
