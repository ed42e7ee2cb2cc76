package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportExplicitModifiers(t *testing.T) {
	r := NewReport()
	r.Press(NewKeycode(KeyLeftShift, ModNone))
	r.Press(NewKeycode(KeyRightCtrl, ModNone))
	assert.Equal(t, ModLShift|ModRCtrl, r.ExplicitModifiers())
	assert.Empty(t, r.Keys())

	r.Release(NewKeycode(KeyLeftShift, ModNone))
	assert.Equal(t, ModRCtrl, r.ExplicitModifiers())
}

func TestReportImplicitModifiers(t *testing.T) {
	r := NewReport()
	r.Press(NewKeycode(KeyA, ModLShift))
	assert.Equal(t, ModNone, r.ExplicitModifiers())
	assert.Equal(t, ModLShift, r.Modifiers())
	assert.True(t, r.Pressed(KeyA))

	r.Release(NewKeycode(KeyA, ModLShift))
	assert.Equal(t, ModNone, r.Modifiers())
	assert.False(t, r.Pressed(KeyA))
}

func TestReportKeyLimit(t *testing.T) {
	r := NewReport()
	for i := 0; i < MaxKeys; i++ {
		assert.True(t, r.Press(NewKeycode(Letter(rune('a'+i)), ModNone)))
	}
	assert.False(t, r.Press(NewKeycode(KeySpace, ModNone)))
	// Re-pressing a held key is not a new slot.
	assert.True(t, r.Press(NewKeycode(KeyA, ModNone)))
	assert.Len(t, r.Keys(), MaxKeys)

	r.Clear()
	assert.Empty(t, r.Snapshot().Keys)
}

func TestIndicators(t *testing.T) {
	var ind Indicators
	assert.False(t, ind.Has(IndicatorCapsLock))
	ind = ind.Toggle(IndicatorCapsLock)
	assert.True(t, ind.Has(IndicatorCapsLock))
	assert.Equal(t, Indicators(0x02), ind)
	assert.Equal(t, "CapsLock", ind.String())
	assert.Equal(t, "none", Indicators(0).String())

	assert.Equal(t, KeyCapsLock, LockUsage(IndicatorCapsLock))
	assert.Equal(t, KeyNumLock, LockUsage(IndicatorNumLock))
	got, ok := LockIndicator(KeyScrollLock)
	assert.True(t, ok)
	assert.Equal(t, IndicatorScrollLock, got)

	p, ok := ParseIndicator("num_lock")
	assert.True(t, ok)
	assert.Equal(t, IndicatorNumLock, p)
	p, ok = ParseIndicator("kana")
	assert.True(t, ok)
	assert.Equal(t, Usage(0), LockUsage(p))
	_, ok = ParseIndicator("shift")
	assert.False(t, ok)
}
