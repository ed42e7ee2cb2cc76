package hid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeycode(t *testing.T) {
	tests := []struct {
		spec     string
		wantPage uint16
		wantID   uint16
		wantMods Modifiers
	}{
		{"A", PageKeyboard, 0x04, ModNone},
		{"a", PageKeyboard, 0x04, ModNone},
		{"space", PageKeyboard, 0x2C, ModNone},
		{"CAPSLOCK", PageKeyboard, 0x39, ModNone},
		{"caps", PageKeyboard, 0x39, ModNone},
		{"F12", PageKeyboard, 0x45, ModNone},
		{"N1", PageKeyboard, 0x1E, ModNone},
		{"LS(A)", PageKeyboard, 0x04, ModLShift},
		{"LC(LS(TAB))", PageKeyboard, 0x2B, ModLCtrl | ModLShift},
		{"Shift+A", PageKeyboard, 0x04, ModLShift},
		{"Ctrl+Alt+DEL", PageKeyboard, 0x4C, ModLCtrl | ModLAlt},
		{"0x070039", PageKeyboard, 0x39, ModNone},
		{"0x39", PageKeyboard, 0x39, ModNone},
		{"0x02070004", PageKeyboard, 0x04, ModLShift},
		{"0x0C00E2", PageConsumer, 0xE2, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			kc, err := ParseKeycode(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, kc.Usage().Page())
			assert.Equal(t, tt.wantID, kc.Usage().ID())
			assert.Equal(t, tt.wantMods, kc.Modifiers())
		})
	}
}

func TestParseKeycodeErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"NOPE", ErrInvalidSpec},
		{"XX(A)", ErrInvalidSpec},
		{"LS(A", ErrUnmatchedBracket},
		{"A)", ErrUnmatchedBracket},
		{"Hyper+A", ErrInvalidSpec},
		{"0xZZ", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseKeycode(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.spec, pe.Spec)
		})
	}
}

func TestParseUsageRejectsModifiers(t *testing.T) {
	u, err := ParseUsage("CAPSLOCK")
	require.NoError(t, err)
	assert.Equal(t, KeyCapsLock, u)

	_, err = ParseUsage("LS(CAPSLOCK)")
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestKeycodeString(t *testing.T) {
	assert.Equal(t, "A", NewKeycode(KeyA, ModNone).String())
	assert.Equal(t, "LS(A)", NewKeycode(KeyA, ModLShift).String())
	assert.Equal(t, "LC(LS(TAB))", NewKeycode(KeyTab, ModLCtrl|ModLShift).String())

	// Round trip through the parser.
	kc := MustParseKeycode("LC(LS(TAB))")
	assert.Equal(t, kc, MustParseKeycode(kc.String()))
}

func TestUsagePacking(t *testing.T) {
	u := NewUsage(0x07, 0x39)
	assert.Equal(t, Usage(0x070039), u)
	assert.Equal(t, uint16(0x07), u.Page())
	assert.Equal(t, uint16(0x39), u.ID())
	assert.Equal(t, KeyCapsLock, u)
	assert.Equal(t, "CAPSLOCK", u.String())
	assert.Equal(t, "0x0C/0xE2", NewUsage(PageConsumer, 0xE2).String())
}

func TestModifierUsages(t *testing.T) {
	assert.Equal(t, ModLCtrl, KeyLeftCtrl.Modifier())
	assert.Equal(t, ModLShift, KeyLeftShift.Modifier())
	assert.Equal(t, ModRGui, KeyRightGUI.Modifier())
	assert.Equal(t, ModNone, KeyA.Modifier())
	assert.False(t, KeyCapsLock.IsModifier())
}

func TestLetterAndDigit(t *testing.T) {
	assert.Equal(t, KeyA, Letter('a'))
	assert.Equal(t, KeyZ, Letter('Z'))
	assert.Equal(t, Usage(0), Letter('1'))
	assert.Equal(t, KeyN1, Digit('1'))
	assert.Equal(t, KeyN0, Digit('0'))
	assert.Equal(t, Usage(0), Digit('x'))
}

func TestKeycodeForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'q', "Q"},
		{'Q', "LS(Q)"},
		{'7', "N7"},
		{' ', "SPACE"},
		{'\n', "ENTER"},
		{'_', "LS(MINUS)"},
	}
	for _, tt := range tests {
		kc, ok := KeycodeForRune(tt.r)
		require.True(t, ok, "%q", tt.r)
		assert.Equal(t, MustParseKeycode(tt.want), kc, "%q", tt.r)
	}

	_, ok := KeycodeForRune('!')
	assert.False(t, ok)
}
