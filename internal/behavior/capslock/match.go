package capslock

import "github.com/dshills/lockkeys/internal/hid"

// MatchKeyItem returns the first item matching the key page and id whose
// required modifiers are all present in mods. mods should be the event's
// implicit modifiers together with the explicitly held ones.
func MatchKeyItem(items []KeyItem, page, id uint16, mods hid.Modifiers) (KeyItem, bool) {
	for _, item := range items {
		if item.Page == page && item.ID == id && mods.Contains(item.Modifiers) {
			return item, true
		}
	}
	return KeyItem{}, false
}
