package hid

import "fmt"

// usageNames holds the canonical name of each named usage.
var usageNames = map[Usage]string{}

// nameUsages maps every accepted spelling (upper case) to its usage.
var nameUsages = map[string]Usage{}

func register(u Usage, names ...string) {
	if _, ok := usageNames[u]; !ok {
		usageNames[u] = names[0]
	}
	for _, n := range names {
		nameUsages[n] = u
	}
}

func init() {
	for r := 'A'; r <= 'Z'; r++ {
		register(Letter(r), string(r))
	}
	for r := '1'; r <= '9'; r++ {
		register(Digit(r), fmt.Sprintf("N%c", r), fmt.Sprintf("NUMBER_%c", r), string(r))
	}
	register(KeyN0, "N0", "NUMBER_0", "0")

	register(KeyEnter, "ENTER", "RET", "RETURN")
	register(KeyEscape, "ESC", "ESCAPE")
	register(KeyBackspace, "BSPC", "BACKSPACE")
	register(KeyTab, "TAB")
	register(KeySpace, "SPACE", "SPC")
	register(KeyMinus, "MINUS")
	register(NewUsage(PageKeyboard, 0x2E), "EQUAL")
	register(NewUsage(PageKeyboard, 0x2F), "LBKT", "LEFT_BRACKET")
	register(NewUsage(PageKeyboard, 0x30), "RBKT", "RIGHT_BRACKET")
	register(NewUsage(PageKeyboard, 0x31), "BSLH", "BACKSLASH")
	register(NewUsage(PageKeyboard, 0x33), "SEMI", "SEMICOLON")
	register(NewUsage(PageKeyboard, 0x34), "SQT", "APOSTROPHE")
	register(NewUsage(PageKeyboard, 0x35), "GRAVE")
	register(NewUsage(PageKeyboard, 0x36), "COMMA")
	register(NewUsage(PageKeyboard, 0x37), "DOT", "PERIOD")
	register(NewUsage(PageKeyboard, 0x38), "FSLH", "SLASH")
	register(KeyCapsLock, "CAPSLOCK", "CAPS", "CLCK")
	for i := uint16(0); i < 12; i++ {
		register(NewUsage(PageKeyboard, 0x3A+i), fmt.Sprintf("F%d", i+1))
	}
	register(NewUsage(PageKeyboard, 0x46), "PSCRN", "PRINTSCREEN")
	register(KeyScrollLock, "SCROLLLOCK", "SLCK")
	register(NewUsage(PageKeyboard, 0x48), "PAUSE_BREAK", "PAUSE")
	register(NewUsage(PageKeyboard, 0x49), "INS", "INSERT")
	register(NewUsage(PageKeyboard, 0x4A), "HOME")
	register(NewUsage(PageKeyboard, 0x4B), "PG_UP", "PAGEUP")
	register(NewUsage(PageKeyboard, 0x4C), "DEL", "DELETE")
	register(NewUsage(PageKeyboard, 0x4D), "END")
	register(NewUsage(PageKeyboard, 0x4E), "PG_DN", "PAGEDOWN")
	register(NewUsage(PageKeyboard, 0x4F), "RIGHT")
	register(NewUsage(PageKeyboard, 0x50), "LEFT")
	register(NewUsage(PageKeyboard, 0x51), "DOWN")
	register(NewUsage(PageKeyboard, 0x52), "UP")
	register(KeyNumLock, "NUMLOCK", "NLCK", "KP_NUMLOCK")

	register(KeyLeftCtrl, "LCTRL", "LEFT_CONTROL")
	register(KeyLeftShift, "LSHIFT", "LSHFT", "LEFT_SHIFT")
	register(KeyLeftAlt, "LALT", "LEFT_ALT")
	register(KeyLeftGUI, "LGUI", "LCMD", "LWIN", "LEFT_GUI")
	register(KeyRightCtrl, "RCTRL", "RIGHT_CONTROL")
	register(KeyRightShift, "RSHIFT", "RSHFT", "RIGHT_SHIFT")
	register(KeyRightAlt, "RALT", "RIGHT_ALT")
	register(KeyRightGUI, "RGUI", "RCMD", "RWIN", "RIGHT_GUI")
}

// UsageFromName returns the usage for a key name (case-insensitive).
func UsageFromName(name string) (Usage, bool) {
	u, ok := nameUsages[upper(name)]
	return u, ok
}
