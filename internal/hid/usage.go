package hid

import "fmt"

// Usage pages used by keyboards.
const (
	PageGenericDesktop uint16 = 0x01
	PageKeyboard       uint16 = 0x07
	PageLED            uint16 = 0x08
	PageConsumer       uint16 = 0x0C
)

// Usage identifies a key or function by HID usage page and usage id.
// The page is stored in bits 16-23 and the id in bits 0-15.
type Usage uint32

// NewUsage packs a usage page and id into a Usage.
func NewUsage(page, id uint16) Usage {
	return Usage(uint32(page&0xFF)<<16 | uint32(id))
}

// Page returns the usage page.
func (u Usage) Page() uint16 {
	return uint16((u >> 16) & 0xFF)
}

// ID returns the usage id within its page.
func (u Usage) ID() uint16 {
	return uint16(u & 0xFFFF)
}

// IsZero reports whether u is the zero usage.
func (u Usage) IsZero() bool {
	return u == 0
}

// IsModifier reports whether u is one of the eight keyboard modifier keys.
func (u Usage) IsModifier() bool {
	return u.Page() == PageKeyboard && u.ID() >= 0xE0 && u.ID() <= 0xE7
}

// Modifier returns the modifier bit for a modifier key usage, or ModNone.
func (u Usage) Modifier() Modifiers {
	if !u.IsModifier() {
		return ModNone
	}
	return Modifiers(1 << (u.ID() - 0xE0))
}

// String returns the key name if known, otherwise the page/id in hex.
func (u Usage) String() string {
	if name, ok := usageNames[u]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X/0x%02X", u.Page(), u.ID())
}

// Keycode is a Usage with implicit modifiers in bits 24-31, the encoding a
// binding uses for keys such as LS(A).
type Keycode uint32

// NewKeycode combines a usage with implicit modifiers.
func NewKeycode(u Usage, mods Modifiers) Keycode {
	return Keycode(uint32(mods)<<24 | uint32(u))
}

// Usage returns the keycode without its implicit modifiers.
func (k Keycode) Usage() Usage {
	return Usage(k & 0x00FFFFFF)
}

// Modifiers returns the implicit modifiers carried by the keycode.
func (k Keycode) Modifiers() Modifiers {
	return Modifiers(k >> 24)
}

// String returns a ZMK-style spelling such as "LS(A)".
func (k Keycode) String() string {
	s := k.Usage().String()
	mods := k.Modifiers()
	for i := len(modifierFuncs) - 1; i >= 0; i-- {
		f := modifierFuncs[i]
		if mods.Has(f.mod) {
			s = f.name + "(" + s + ")"
		}
	}
	return s
}

// Keyboard page usages.
var (
	KeyA          = NewUsage(PageKeyboard, 0x04)
	KeyZ          = NewUsage(PageKeyboard, 0x1D)
	KeyN1         = NewUsage(PageKeyboard, 0x1E)
	KeyN0         = NewUsage(PageKeyboard, 0x27)
	KeyEnter      = NewUsage(PageKeyboard, 0x28)
	KeyEscape     = NewUsage(PageKeyboard, 0x29)
	KeyBackspace  = NewUsage(PageKeyboard, 0x2A)
	KeyTab        = NewUsage(PageKeyboard, 0x2B)
	KeySpace      = NewUsage(PageKeyboard, 0x2C)
	KeyMinus      = NewUsage(PageKeyboard, 0x2D)
	KeyCapsLock   = NewUsage(PageKeyboard, 0x39)
	KeyF1         = NewUsage(PageKeyboard, 0x3A)
	KeyF12        = NewUsage(PageKeyboard, 0x45)
	KeyScrollLock = NewUsage(PageKeyboard, 0x47)
	KeyNumLock    = NewUsage(PageKeyboard, 0x53)
	KeyLeftCtrl   = NewUsage(PageKeyboard, 0xE0)
	KeyLeftShift  = NewUsage(PageKeyboard, 0xE1)
	KeyLeftAlt    = NewUsage(PageKeyboard, 0xE2)
	KeyLeftGUI    = NewUsage(PageKeyboard, 0xE3)
	KeyRightCtrl  = NewUsage(PageKeyboard, 0xE4)
	KeyRightShift = NewUsage(PageKeyboard, 0xE5)
	KeyRightAlt   = NewUsage(PageKeyboard, 0xE6)
	KeyRightGUI   = NewUsage(PageKeyboard, 0xE7)
)

// Letter returns the usage of an ASCII letter, or 0 if r is not a letter.
func Letter(r rune) Usage {
	switch {
	case r >= 'a' && r <= 'z':
		return NewUsage(PageKeyboard, 0x04+uint16(r-'a'))
	case r >= 'A' && r <= 'Z':
		return NewUsage(PageKeyboard, 0x04+uint16(r-'A'))
	}
	return 0
}

// Digit returns the usage of an ASCII digit, or 0 if r is not a digit.
func Digit(r rune) Usage {
	switch {
	case r == '0':
		return KeyN0
	case r >= '1' && r <= '9':
		return NewUsage(PageKeyboard, 0x1E+uint16(r-'1'))
	}
	return 0
}

// KeycodeForRune returns the US-layout keycode that types r. Upper-case
// letters and '_' carry an implicit left shift.
func KeycodeForRune(r rune) (Keycode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return NewKeycode(Letter(r), ModNone), true
	case r >= 'A' && r <= 'Z':
		return NewKeycode(Letter(r), ModLShift), true
	case r >= '0' && r <= '9':
		return NewKeycode(Digit(r), ModNone), true
	}
	switch r {
	case ' ':
		return NewKeycode(KeySpace, ModNone), true
	case '\n':
		return NewKeycode(KeyEnter, ModNone), true
	case '\t':
		return NewKeycode(KeyTab, ModNone), true
	case '\b':
		return NewKeycode(KeyBackspace, ModNone), true
	case '-':
		return NewKeycode(KeyMinus, ModNone), true
	case '_':
		return NewKeycode(KeyMinus, ModLShift), true
	}
	return 0, false
}
