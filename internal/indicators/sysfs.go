package indicators

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/lockkeys/internal/hid"
)

// DefaultLEDDir is where Linux exposes keyboard LEDs.
const DefaultLEDDir = "/sys/class/leds"

var ledSuffixes = []struct {
	ind    hid.Indicators
	suffix string
}{
	{hid.IndicatorNumLock, "numlock"},
	{hid.IndicatorCapsLock, "capslock"},
	{hid.IndicatorScrollLock, "scrolllock"},
	{hid.IndicatorCompose, "compose"},
	{hid.IndicatorKana, "kana"},
}

// SysfsReader reads lock LEDs from a Linux sysfs LED class directory.
// An indicator is on when any keyboard reports a non-zero brightness
// for it.
type SysfsReader struct {
	paths map[hid.Indicators][]string
}

// NewSysfsReader scans dir for "<device>::<led>/brightness" files.
func NewSysfsReader(dir string) (*SysfsReader, error) {
	r := &SysfsReader{paths: make(map[hid.Indicators][]string)}
	found := 0
	for _, led := range ledSuffixes {
		matches, err := filepath.Glob(filepath.Join(dir, "*::"+led.suffix, "brightness"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		r.paths[led.ind] = matches
		found += len(matches)
	}
	if found == 0 {
		return nil, fmt.Errorf("no keyboard LEDs under %s: %w", dir, ErrUnsupported)
	}
	return r, nil
}

// Indicators implements Reader. Unreadable LEDs count as off.
func (r *SysfsReader) Indicators() hid.Indicators {
	var ind hid.Indicators
	for _, led := range ledSuffixes {
		for _, p := range r.paths[led.ind] {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			v := bytes.TrimSpace(data)
			if len(v) > 0 && !bytes.Equal(v, []byte("0")) {
				ind = ind.With(led.ind)
				break
			}
		}
	}
	return ind
}
