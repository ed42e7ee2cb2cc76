package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/lockkeys/internal/hid"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventRefresh
	EventQuit
)

// Event is a terminal event translated for the simulator.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key hid.Keycode

	// Width and Height are set for EventResize.
	Width, Height int
}

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// New creates a terminal on the controlling tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a terminal on an existing screen, such as a
// tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PollEvent blocks for the next event. Keys with no keyboard equivalent
// come back as EventNone.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// Refresh wakes PollEvent with an EventRefresh.
func (t *Terminal) Refresh() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if isQuit(e) {
			return Event{Type: EventQuit}
		}
		kc, ok := convertKey(e.Key(), e.Rune())
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: kc}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventRefresh}

	case nil:
		// PollEvent returns nil once the screen is finalized.
		return Event{Type: EventQuit}

	default:
		return Event{Type: EventNone}
	}
}

func isQuit(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	case tcell.KeyRune:
		return e.Modifiers()&tcell.ModCtrl != 0 && (e.Rune() == 'c' || e.Rune() == 'q')
	}
	return false
}
