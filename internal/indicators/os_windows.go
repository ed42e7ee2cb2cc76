package indicators

import (
	"golang.org/x/sys/windows"

	"github.com/dshills/lockkeys/internal/hid"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	procGetKeyState = user32.NewProc("GetKeyState")
)

// Virtual-key codes of the lock keys.
const (
	vkCapital = 0x14
	vkNumLock = 0x90
	vkScroll  = 0x91
)

type keyStateReader struct{}

// NewOSReader returns a reader backed by GetKeyState.
func NewOSReader() (Reader, error) {
	if err := procGetKeyState.Find(); err != nil {
		return nil, err
	}
	return keyStateReader{}, nil
}

func (keyStateReader) Indicators() hid.Indicators {
	var ind hid.Indicators
	if toggled(vkNumLock) {
		ind = ind.With(hid.IndicatorNumLock)
	}
	if toggled(vkCapital) {
		ind = ind.With(hid.IndicatorCapsLock)
	}
	if toggled(vkScroll) {
		ind = ind.With(hid.IndicatorScrollLock)
	}
	return ind
}

// toggled reports the low-order bit of GetKeyState, set while a lock key
// is engaged.
func toggled(vk uintptr) bool {
	ret, _, _ := procGetKeyState.Call(vk)
	return ret&0x0001 != 0
}
