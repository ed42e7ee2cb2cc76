package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/lockkeys/internal/hid"
)

// namedKeys maps tcell's special keys to keyboard usage names.
var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "ENTER",
	tcell.KeyTab:        "TAB",
	tcell.KeyBackspace:  "BSPC",
	tcell.KeyBackspace2: "BSPC",
	tcell.KeyEscape:     "ESC",
	tcell.KeyDelete:     "DEL",
	tcell.KeyInsert:     "INS",
	tcell.KeyHome:       "HOME",
	tcell.KeyEnd:        "END",
	tcell.KeyPgUp:       "PG_UP",
	tcell.KeyPgDn:       "PG_DN",
	tcell.KeyUp:         "UP",
	tcell.KeyDown:       "DOWN",
	tcell.KeyLeft:       "LEFT",
	tcell.KeyRight:      "RIGHT",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// convertKey converts a tcell key to a keycode.
func convertKey(k tcell.Key, r rune) (hid.Keycode, bool) {
	if k == tcell.KeyRune {
		return hid.KeycodeForRune(r)
	}
	name, ok := namedKeys[k]
	if !ok {
		return 0, false
	}
	u, ok := hid.UsageFromName(name)
	if !ok {
		return 0, false
	}
	return hid.NewKeycode(u, hid.ModNone), true
}
