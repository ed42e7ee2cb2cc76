package capslock

import (
	"github.com/dshills/lockkeys/internal/hid"
)

// Preset is a stock behavior configuration.
type Preset struct {
	// Short is the compact devicetree-style label, e.g. "cplkwrd".
	Short  string
	Config Config
}

type presetBase struct {
	name, short, display string
	cfg                  Config
}

var presetBases = []presetBase{
	{"capslock_on", "cplkon", "Capslock on", Config{EnableOnPress: true}},
	{"capslock_off", "cplkoff", "Capslock off", Config{DisableOnRelease: true}},
	{"capslock_hold", "cplkhld", "Capslock hold", Config{EnableOnPress: true, DisableOnRelease: true}},
	{"capslock_word", "cplkwrd", "Capslock word", Config{
		EnableOnPress:        true,
		DisableOnNextRelease: true,
		DisableOnKeys:        keyItems(hid.KeySpace, hid.KeyTab, hid.KeyEnter),
	}},
	{"capslock_line", "cplkln", "Capslock line", Config{
		EnableOnPress:        true,
		DisableOnNextRelease: true,
		DisableOnKeys:        keyItems(hid.KeyEnter),
	}},
}

func keyItems(usages ...hid.Usage) []KeyItem {
	items := make([]KeyItem, len(usages))
	for i, u := range usages {
		items[i] = KeyItem{Page: u.Page(), ID: u.ID()}
	}
	return items
}

// Presets returns the stock behaviors followed by their macOS variants.
// Indices are left at zero.
func Presets() []Preset {
	out := make([]Preset, 0, 2*len(presetBases))
	for _, mac := range []bool{false, true} {
		for _, b := range presetBases {
			cfg := b.cfg
			cfg.Name = b.name
			cfg.DisplayName = b.display
			cfg.PressDuration = DefaultPressDuration
			cfg.DisableOnKeys = append([]KeyItem(nil), b.cfg.DisableOnKeys...)
			short := b.short
			if mac {
				cfg.Name += "_mac"
				cfg.DisplayName += " (Mac)"
				cfg.PressDuration = MacPressDuration
				short += "2"
			}
			out = append(out, Preset{Short: short, Config: cfg})
		}
	}
	return out
}

// LookupPreset returns the preset with the given name or short label.
func LookupPreset(name string) (Config, bool) {
	for _, p := range Presets() {
		if p.Config.Name == name || p.Short == name {
			return p.Config, true
		}
	}
	return Config{}, false
}
