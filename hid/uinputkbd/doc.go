// Package uinputkbd sends keypad keystrokes through a Linux uinput virtual
// keyboard, so a keypad wired to a single-board computer types into that
// computer directly.
//
// Each keystroke presses the modifiers, taps the key and releases the
// modifiers in reverse order:
//
//	kbd, err := uinputkbd.Open("/dev/uinput", "softkeypad")
//	if err != nil {
//	    return err
//	}
//	defer kbd.Close()
//	err = kbd.KeyCode(ctx, 'a', keymap.Ctrl)
//
// Key codes come from the evdev tables; the characters supported are those
// of the US layout in package hid.
package uinputkbd
