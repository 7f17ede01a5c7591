//go:build linux

package uinputkbd

import (
	"context"
	"fmt"
	"sync"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"

	"github.com/ardnew/softkeypad/hid"
	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// Device is the part of uinput.Keyboard the transport uses.
type Device interface {
	KeyDown(key int) error
	KeyUp(key int) error
	Close() error
}

// Keyboard is a [hid.Transport] over a uinput virtual keyboard.
type Keyboard struct {
	mutex  sync.Mutex
	dev    Device
	closed bool
}

// Open creates a virtual keyboard named name on the uinput device at path
// (usually /dev/uinput).
func Open(path, name string) (*Keyboard, error) {
	dev, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("create uinput keyboard: %w", err)
	}
	pkg.LogInfo(pkg.ComponentHID, "uinput keyboard created", "path", path, "name", name)
	return New(dev), nil
}

// New wraps an existing device.
func New(dev Device) *Keyboard {
	return &Keyboard{dev: dev}
}

// Print types ch.
func (k *Keyboard) Print(ctx context.Context, ch byte) error {
	return k.KeyCode(ctx, ch, keymap.None)
}

// KeyCode presses the modifiers, taps the key of ch and releases the
// modifiers in reverse order.
func (k *Keyboard) KeyCode(ctx context.Context, ch byte, m keymap.Modifier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	report, ok := hid.Encode(ch, m)
	if !ok {
		return fmt.Errorf("0x%02x: %w", ch, pkg.ErrUnmapped)
	}
	code, ok := linuxCode(report.Keys[0])
	if !ok {
		return fmt.Errorf("usage 0x%02x: %w", report.Keys[0], pkg.ErrUnmapped)
	}
	mods := modifierCodes(report.Modifiers)

	k.mutex.Lock()
	defer k.mutex.Unlock()
	if k.closed {
		return pkg.ErrClosed
	}

	for i, mc := range mods {
		if err := k.dev.KeyDown(mc); err != nil {
			k.release(mods[:i])
			return fmt.Errorf("modifier down: %w", err)
		}
	}
	err := k.dev.KeyDown(code)
	if err == nil {
		err = k.dev.KeyUp(code)
	}
	k.release(mods)
	if err != nil {
		return fmt.Errorf("key %d: %w", code, err)
	}
	return nil
}

// release lifts the given modifier codes, last pressed first.
func (k *Keyboard) release(codes []int) {
	for i := len(codes) - 1; i >= 0; i-- {
		if err := k.dev.KeyUp(codes[i]); err != nil {
			pkg.LogWarn(pkg.ComponentHID, "modifier release failed", "code", codes[i], "error", err)
		}
	}
}

// Close destroys the virtual keyboard.
func (k *Keyboard) Close() error {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	if k.closed {
		return nil
	}
	k.closed = true
	return k.dev.Close()
}

var modifierOrder = []struct {
	bit  uint8
	code int
}{
	{hid.ModLeftCtrl, evdev.KEY_LEFTCTRL},
	{hid.ModLeftShift, evdev.KEY_LEFTSHIFT},
	{hid.ModLeftAlt, evdev.KEY_LEFTALT},
	{hid.ModLeftGUI, evdev.KEY_LEFTMETA},
}

func modifierCodes(bits uint8) []int {
	var codes []int
	for _, m := range modifierOrder {
		if bits&m.bit != 0 {
			codes = append(codes, m.code)
		}
	}
	return codes
}

var letterCodes = [26]int{
	evdev.KEY_A, evdev.KEY_B, evdev.KEY_C, evdev.KEY_D, evdev.KEY_E,
	evdev.KEY_F, evdev.KEY_G, evdev.KEY_H, evdev.KEY_I, evdev.KEY_J,
	evdev.KEY_K, evdev.KEY_L, evdev.KEY_M, evdev.KEY_N, evdev.KEY_O,
	evdev.KEY_P, evdev.KEY_Q, evdev.KEY_R, evdev.KEY_S, evdev.KEY_T,
	evdev.KEY_U, evdev.KEY_V, evdev.KEY_W, evdev.KEY_X, evdev.KEY_Y,
	evdev.KEY_Z,
}

var digitCodes = [9]int{
	evdev.KEY_1, evdev.KEY_2, evdev.KEY_3, evdev.KEY_4, evdev.KEY_5,
	evdev.KEY_6, evdev.KEY_7, evdev.KEY_8, evdev.KEY_9,
}

var otherCodes = map[hid.Usage]int{
	hid.Key0:          evdev.KEY_0,
	hid.KeyEnter:      evdev.KEY_ENTER,
	hid.KeyEscape:     evdev.KEY_ESC,
	hid.KeyBackspace:  evdev.KEY_BACKSPACE,
	hid.KeyTab:        evdev.KEY_TAB,
	hid.KeySpace:      evdev.KEY_SPACE,
	hid.KeyMinus:      evdev.KEY_MINUS,
	hid.KeyEqual:      evdev.KEY_EQUAL,
	hid.KeyLeftBrace:  evdev.KEY_LEFTBRACE,
	hid.KeyRightBrace: evdev.KEY_RIGHTBRACE,
	hid.KeyBackslash:  evdev.KEY_BACKSLASH,
	hid.KeySemicolon:  evdev.KEY_SEMICOLON,
	hid.KeyQuote:      evdev.KEY_APOSTROPHE,
	hid.KeyGrave:      evdev.KEY_GRAVE,
	hid.KeyComma:      evdev.KEY_COMMA,
	hid.KeyDot:        evdev.KEY_DOT,
	hid.KeySlash:      evdev.KEY_SLASH,
}

// linuxCode translates a HID usage into a Linux input event code.
func linuxCode(u hid.Usage) (int, bool) {
	switch {
	case u >= hid.KeyA && u <= hid.KeyZ:
		return letterCodes[u-hid.KeyA], true
	case u >= hid.Key1 && u <= hid.Key9:
		return digitCodes[u-hid.Key1], true
	}
	code, ok := otherCodes[u]
	return code, ok
}

var _ hid.Transport = (*Keyboard)(nil)
