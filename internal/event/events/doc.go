// Package events defines the concrete event payloads published on the bus.
package events
