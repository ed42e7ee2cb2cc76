// Package hid provides the HID keyboard vocabulary used by the rest of the
// module.
//
// This package defines the fundamental types for representing keyboard
// input and host state:
//
//   - Usage: a HID usage (page + id), e.g. Caps Lock is page 0x07, id 0x39
//   - Keycode: a Usage plus implicit modifiers packed in the top byte
//   - Modifiers: the HID modifier byte (LCtrl, LShift, ... RGui)
//   - Indicators: the host-reported lock LED bitmask (Num, Caps, Scroll, ...)
//   - Report: the keyboard report state that tracks explicitly held modifiers
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Key names: "A", "SPACE", "CAPSLOCK", "F1"
//   - Modifier functions: "LS(A)", "LC(LS(TAB))"
//   - Modifier prefixes: "Shift+A", "Ctrl+Alt+DEL"
//   - Raw numbers: "0x070039", "0x02070004"
package hid
