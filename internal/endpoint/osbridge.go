//go:build (linux && cgo) || windows

package endpoint

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/micmonay/keybd_event"

	"github.com/dshills/lockkeys/internal/hid"
	"github.com/dshills/lockkeys/internal/logging"
)

// linuxSettle is how long uinput needs before the new virtual device
// accepts events.
const linuxSettle = 2 * time.Second

// OSBridge injects reports into the operating system as key presses.
// Keys without an OS mapping are ignored.
type OSBridge struct {
	mu   sync.Mutex
	kb   keybd_event.KeyBonding
	prev []hid.Usage
	log  logr.Logger
}

// NewOSBridge opens the OS key injector.
func NewOSBridge(log logr.Logger) (*OSBridge, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("open key injector: %w", err)
	}
	if runtime.GOOS == "linux" {
		time.Sleep(linuxSettle)
	}
	return &OSBridge{kb: kb, log: log}, nil
}

// Send implements Endpoint.
func (b *OSBridge) Send(ctx context.Context, r hid.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	released := diff(b.prev, r.Keys)
	pressed := diff(r.Keys, b.prev)
	b.prev = append(b.prev[:0], r.Keys...)

	b.kb.HasSHIFT(r.Modifiers.Has(hid.ModShift))
	b.kb.HasCTRL(r.Modifiers.Has(hid.ModCtrl))
	b.kb.HasALT(r.Modifiers.Has(hid.ModAlt))

	for _, u := range released {
		if err := b.inject(u, false); err != nil {
			return err
		}
	}
	for _, u := range pressed {
		if err := b.inject(u, true); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (b *OSBridge) inject(u hid.Usage, press bool) error {
	vk, ok := osKeys[u]
	if !ok {
		b.log.V(logging.VERBOSE).Info("no OS key for usage", "usage", u.String())
		return nil
	}
	b.kb.SetKeys(vk)
	defer b.kb.Clear()

	var err error
	if press {
		err = b.kb.Press()
	} else {
		err = b.kb.Release()
	}
	if err != nil {
		return fmt.Errorf("inject %s: %w", u, err)
	}
	b.log.V(logging.TRACE).Info("injected", "usage", u.String(), "press", press)
	return nil
}

var osKeys = map[hid.Usage]int{
	hid.KeyEnter:      keybd_event.VK_ENTER,
	hid.KeyEscape:     keybd_event.VK_ESC,
	hid.KeyBackspace:  keybd_event.VK_BACKSPACE,
	hid.KeyTab:        keybd_event.VK_TAB,
	hid.KeySpace:      keybd_event.VK_SPACE,
	hid.KeyCapsLock:   keybd_event.VK_CAPSLOCK,
	hid.KeyNumLock:    keybd_event.VK_NUMLOCK,
	hid.KeyScrollLock: keybd_event.VK_SCROLLLOCK,
}

func init() {
	letters := []int{
		keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
		keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
		keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
		keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
		keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
		keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
		keybd_event.VK_Y, keybd_event.VK_Z,
	}
	for i, vk := range letters {
		osKeys[hid.KeyA+hid.Usage(i)] = vk
	}

	digits := []int{
		keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3, keybd_event.VK_4,
		keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7, keybd_event.VK_8,
		keybd_event.VK_9, keybd_event.VK_0,
	}
	for i, vk := range digits {
		osKeys[hid.KeyN1+hid.Usage(i)] = vk
	}

	fkeys := []int{
		keybd_event.VK_F1, keybd_event.VK_F2, keybd_event.VK_F3, keybd_event.VK_F4,
		keybd_event.VK_F5, keybd_event.VK_F6, keybd_event.VK_F7, keybd_event.VK_F8,
		keybd_event.VK_F9, keybd_event.VK_F10, keybd_event.VK_F11, keybd_event.VK_F12,
	}
	for i, vk := range fkeys {
		osKeys[hid.KeyF1+hid.Usage(i)] = vk
	}
}
