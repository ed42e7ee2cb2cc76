package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lockkeys/internal/app"
	"github.com/dshills/lockkeys/internal/hid"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(screen)
	require.NoError(t, term.Init())
	screen.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, screen
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func screenText(screen tcell.Screen) string {
	_, h := screen.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = row(screen, y)
	}
	return strings.Join(rows, "\n")
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want string
		ok   bool
	}{
		{"letter", tcell.KeyRune, 'a', "A", true},
		{"upper", tcell.KeyRune, 'A', "LS(A)", true},
		{"space", tcell.KeyRune, ' ', "SPACE", true},
		{"enter", tcell.KeyEnter, 0, "ENTER", true},
		{"backspace", tcell.KeyBackspace2, 0, "BSPC", true},
		{"function", tcell.KeyF4, 0, "F4", true},
		{"arrow", tcell.KeyLeft, 0, "LEFT", true},
		{"punctuation", tcell.KeyRune, '!', "", false},
		{"control", tcell.KeyCtrlB, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kc, ok := convertKey(tt.key, tt.r)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, hid.MustParseKeycode(tt.want), kc)
			}
		})
	}
}

func TestPollEvent(t *testing.T) {
	term, screen := newSimTerminal(t, 80, 24)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone)))
	ev := term.PollEvent()
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, hid.MustParseKeycode("F3"), ev.Key)

	term.Refresh()
	assert.Equal(t, EventRefresh, term.PollEvent().Type)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)))
	assert.Equal(t, EventQuit, term.PollEvent().Type)
}

func TestDraw(t *testing.T) {
	term, screen := newSimTerminal(t, 90, 30)

	term.Draw(View{
		Title:    "lockkeys",
		Endpoint: "virtual",
		Snapshot: app.Snapshot{
			Indicators: hid.IndicatorCapsLock,
			Held:       []hid.Usage{hid.MustParseKeycode("F3").Usage()},
			Pending:    2,
			Text:       "one\ntwo\tTHREE",
			History:    []string{"keycode.state_changed CAPSLOCK down"},
			Locks: []app.LockState{
				{Index: 0, Name: "capslock_on", Label: "Capslock on", Policies: "enable_on_press"},
				{Index: 2, Name: "capslock_hold", Label: "Capslock hold", Policies: "enable_on_press,disable_on_release", Active: true},
			},
		},
		Triggers: map[string]hid.Usage{"capslock_hold": hid.MustParseKeycode("F3").Usage()},
		Status:   "key up F9: key not held",
	})

	text := screenText(screen)
	assert.Contains(t, text, "lockkeys  endpoint: virtual")
	assert.Contains(t, text, " CapsLock ")
	assert.Contains(t, text, "Held  F3   Pending 2")
	assert.Contains(t, text, "Capslock hold")
	assert.Contains(t, text, "two    THREE")
	assert.Contains(t, text, "keycode.state_changed CAPSLOCK down")
	assert.Equal(t, "key up F9: key not held", row(screen, 28))

	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "Capslock hold") {
			assert.Contains(t, line, "F3")
			assert.Contains(t, line, "yes")
		}
		if strings.Contains(line, "Capslock on") {
			assert.Contains(t, line, " - ")
			assert.Contains(t, line, "no")
		}
	}

	// The lit indicator uses the "on" style.
	x := strings.Index(row(screen, 2), "CapsLock")
	require.GreaterOrEqual(t, x, 0)
	_, _, style, _ := screen.GetContent(x, 2) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, styleOn, style)
}

func TestDrawClipsToScreen(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 3)

	assert.NotPanics(t, func() {
		term.Draw(View{Title: "a very long title that does not fit"})
	})
	assert.Equal(t, "a very lon", row(screen, 0))
}
