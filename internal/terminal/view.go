package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/lockkeys/internal/app"
	"github.com/dshills/lockkeys/internal/hid"
)

// View is everything the simulator screen shows.
type View struct {
	Title    string
	Endpoint string
	Snapshot app.Snapshot

	// Triggers maps behavior names to their trigger key.
	Triggers map[string]hid.Usage

	// Status is a one-line message, e.g. the last error.
	Status string
}

var (
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleOn     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleOff    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

var hostLocks = []hid.Indicators{
	hid.IndicatorCapsLock,
	hid.IndicatorNumLock,
	hid.IndicatorScrollLock,
}

// Draw renders v and shows the frame.
func (t *Terminal) Draw(v View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	c := canvas{screen: t.screen, width: w, height: h}
	snap := v.Snapshot

	y := 0
	x := c.text(0, y, styleTitle, v.Title)
	if v.Endpoint != "" {
		c.text(x+2, y, styleLabel, "endpoint: "+v.Endpoint)
	}
	y += 2

	x = c.text(0, y, styleLabel, "Host  ")
	for _, ind := range hostLocks {
		style := styleOff
		if snap.Indicators.Has(ind) {
			style = styleOn
		}
		x = c.text(x, y, style, " "+ind.String()+" ")
		x++
	}
	y++

	held := make([]string, len(snap.Held))
	for i, u := range snap.Held {
		held[i] = u.String()
	}
	c.text(0, y, styleLabel, fmt.Sprintf("Held  %s   Pending %d", orNone(strings.Join(held, " ")), snap.Pending))
	y += 2

	c.text(0, y, styleLabel, fmt.Sprintf("%-4s %-22s %-8s %-7s %s", "#", "Behavior", "Trigger", "Active", "Policies"))
	y++
	for _, l := range snap.Locks {
		trigger := "-"
		if u, ok := v.Triggers[l.Name]; ok {
			trigger = u.String()
		}
		active, style := "no", tcell.StyleDefault
		if l.Active {
			active, style = "yes", styleActive
		}
		c.text(0, y, style, fmt.Sprintf("%-4d %-22s %-8s %-7s %s", l.Index, l.Label, trigger, active, l.Policies))
		y++
	}
	y++

	c.text(0, y, styleLabel, "Text")
	y++
	lines := strings.Split(strings.ReplaceAll(snap.Text, "\t", "    "), "\n")
	for _, line := range tail(lines, 3) {
		c.text(2, y, tcell.StyleDefault, line)
		y++
	}
	y++

	c.text(0, y, styleLabel, "Events")
	y++
	for _, line := range snap.History {
		if y >= h-2 {
			break
		}
		c.text(2, y, styleOff, line)
		y++
	}

	if v.Status != "" {
		c.text(0, h-2, styleError, v.Status)
	}
	c.text(0, h-1, styleLabel, "trigger keys latch down and up; Ctrl+Q quits")
	t.screen.Show()
}

// canvas clips text to the screen.
type canvas struct {
	screen        tcell.Screen
	width, height int
}

// text writes s at (x, y) and returns the column after it.
func (c canvas) text(x, y int, style tcell.Style, s string) int {
	if y < 0 || y >= c.height {
		return x
	}
	for _, r := range s {
		if x >= c.width {
			break
		}
		if x >= 0 {
			c.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
	return x
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
