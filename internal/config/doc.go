// Package config loads lockkeys configuration files.
//
// Configuration is a single TOML file:
//
//	[log]
//	level = "info"
//
//	[host]
//	endpoint = "virtual"   # or "os"
//	latency_ms = 0
//
//	[[behavior]]
//	name = "capslock_word"
//	preset = "capslock_word"
//	press_duration_ms = 95
//
//	[[binding]]
//	trigger = "F1"
//	behavior = "capslock_word"
//
// A behavior may start from a preset and override any field. Missing
// fields without a preset take the zero value, except press_duration_ms
// which defaults to 5. Behaviors are indexed in file order.
//
// A missing file is not an error; Load returns nil and callers fall back
// to Default. Resolve validates the whole file at once and reports every
// problem found.
package config
