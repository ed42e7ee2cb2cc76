package hid

import "strings"

// Modifiers is the HID keyboard modifier byte.
type Modifiers uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifiers = 0

	ModLCtrl  Modifiers = 0x01
	ModLShift Modifiers = 0x02
	ModLAlt   Modifiers = 0x04
	ModLGui   Modifiers = 0x08
	ModRCtrl  Modifiers = 0x10
	ModRShift Modifiers = 0x20
	ModRAlt   Modifiers = 0x40
	ModRGui   Modifiers = 0x80

	// Side-agnostic masks.
	ModCtrl  = ModLCtrl | ModRCtrl
	ModShift = ModLShift | ModRShift
	ModAlt   = ModLAlt | ModRAlt
	ModGui   = ModLGui | ModRGui
)

// Has returns true if m shares any bit with mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// Contains returns true if every bit of sub is set in m.
func (m Modifiers) Contains(sub Modifiers) bool {
	return m&sub == sub
}

// With returns a new Modifiers with mod added.
func (m Modifiers) With(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns a new Modifiers with mod removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// String returns a representation like "LCtrl+LShift".
func (m Modifiers) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, n := range modifierBitNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

var modifierBitNames = []struct {
	mod  Modifiers
	name string
}{
	{ModLCtrl, "LCtrl"},
	{ModLShift, "LShift"},
	{ModLAlt, "LAlt"},
	{ModLGui, "LGui"},
	{ModRCtrl, "RCtrl"},
	{ModRShift, "RShift"},
	{ModRAlt, "RAlt"},
	{ModRGui, "RGui"},
}

// modifierFuncs are the ZMK-style wrappers, e.g. LS(A).
var modifierFuncs = []struct {
	mod  Modifiers
	name string
}{
	{ModLCtrl, "LC"},
	{ModLShift, "LS"},
	{ModLAlt, "LA"},
	{ModLGui, "LG"},
	{ModRCtrl, "RC"},
	{ModRShift, "RS"},
	{ModRAlt, "RA"},
	{ModRGui, "RG"},
}

// modifierNameMap maps prefix names (lowercase) to modifier bits.
// Unsided names select the left-hand key.
var modifierNameMap = map[string]Modifiers{
	"ctrl":    ModLCtrl,
	"control": ModLCtrl,
	"lctrl":   ModLCtrl,
	"rctrl":   ModRCtrl,
	"shift":   ModLShift,
	"lshift":  ModLShift,
	"rshift":  ModRShift,
	"alt":     ModLAlt,
	"option":  ModLAlt,
	"lalt":    ModLAlt,
	"ralt":    ModRAlt,
	"altgr":   ModRAlt,
	"gui":     ModLGui,
	"meta":    ModLGui,
	"cmd":     ModLGui,
	"win":     ModLGui,
	"super":   ModLGui,
	"lgui":    ModLGui,
	"rgui":    ModRGui,
}

// ModifierFromName returns the modifier for a name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifiers {
	return modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
}

// ParseModifiers parses a list like "Ctrl+Shift" or "lctrl|rshift".
// Unknown names are ignored.
func ParseModifiers(s string) Modifiers {
	var result Modifiers
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == '|' || r == ',' || r == ' '
	}) {
		result = result.With(ModifierFromName(part))
	}
	return result
}
