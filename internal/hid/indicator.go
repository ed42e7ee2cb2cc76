package hid

import "strings"

// Indicators is the lock LED bitmask reported by the host in the keyboard
// output report.
type Indicators uint8

const (
	IndicatorNumLock    Indicators = 1 << 0
	IndicatorCapsLock   Indicators = 1 << 1
	IndicatorScrollLock Indicators = 1 << 2
	IndicatorCompose    Indicators = 1 << 3
	IndicatorKana       Indicators = 1 << 4
)

// Has reports whether any bit of ind is set.
func (i Indicators) Has(ind Indicators) bool {
	return i&ind != 0
}

// With returns i with ind set.
func (i Indicators) With(ind Indicators) Indicators {
	return i | ind
}

// Without returns i with ind cleared.
func (i Indicators) Without(ind Indicators) Indicators {
	return i &^ ind
}

// Toggle returns i with ind flipped.
func (i Indicators) Toggle(ind Indicators) Indicators {
	return i ^ ind
}

// String returns a representation like "CapsLock+NumLock".
func (i Indicators) String() string {
	if i == 0 {
		return "none"
	}
	var parts []string
	if i.Has(IndicatorCapsLock) {
		parts = append(parts, "CapsLock")
	}
	if i.Has(IndicatorNumLock) {
		parts = append(parts, "NumLock")
	}
	if i.Has(IndicatorScrollLock) {
		parts = append(parts, "ScrollLock")
	}
	if i.Has(IndicatorCompose) {
		parts = append(parts, "Compose")
	}
	if i.Has(IndicatorKana) {
		parts = append(parts, "Kana")
	}
	return strings.Join(parts, "+")
}

// LockUsage returns the key that toggles the given lock indicator on a
// standard host, or 0 if the indicator has no toggle key.
func LockUsage(ind Indicators) Usage {
	switch ind {
	case IndicatorCapsLock:
		return KeyCapsLock
	case IndicatorNumLock:
		return KeyNumLock
	case IndicatorScrollLock:
		return KeyScrollLock
	}
	return 0
}

// LockIndicator is the inverse of LockUsage.
func LockIndicator(u Usage) (Indicators, bool) {
	switch u {
	case KeyCapsLock:
		return IndicatorCapsLock, true
	case KeyNumLock:
		return IndicatorNumLock, true
	case KeyScrollLock:
		return IndicatorScrollLock, true
	}
	return 0, false
}

// ParseIndicator parses an indicator name such as "capslock" or
// "numlock". The empty string selects Caps Lock.
func ParseIndicator(s string) (Indicators, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "caps", "capslock", "":
		return IndicatorCapsLock, true
	case "num", "numlock":
		return IndicatorNumLock, true
	case "scroll", "scrolllock":
		return IndicatorScrollLock, true
	case "compose":
		return IndicatorCompose, true
	case "kana":
		return IndicatorKana, true
	}
	return 0, false
}
