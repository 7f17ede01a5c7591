package hid

import "github.com/ardnew/softkeypad/keymap"

type asciiEntry struct {
	usage Usage
	shift bool
}

// usTable maps 7-bit ASCII to US layout usages. Zero entries are unmapped.
var usTable = func() (t [128]asciiEntry) {
	for c := byte('a'); c <= 'z'; c++ {
		t[c] = asciiEntry{usage: KeyA + Usage(c-'a')}
		t[c-'a'+'A'] = asciiEntry{usage: KeyA + Usage(c-'a'), shift: true}
	}
	for c := byte('1'); c <= '9'; c++ {
		t[c] = asciiEntry{usage: Key1 + Usage(c-'1')}
	}
	t['0'] = asciiEntry{usage: Key0}

	for i, c := range []byte("!@#$%^&*(") {
		t[c] = asciiEntry{usage: Key1 + Usage(i), shift: true}
	}
	t[')'] = asciiEntry{usage: Key0, shift: true}

	plain := []struct {
		char, shifted byte
		usage         Usage
	}{
		{'-', '_', KeyMinus},
		{'=', '+', KeyEqual},
		{'[', '{', KeyLeftBrace},
		{']', '}', KeyRightBrace},
		{'\\', '|', KeyBackslash},
		{';', ':', KeySemicolon},
		{'\'', '"', KeyQuote},
		{'`', '~', KeyGrave},
		{',', '<', KeyComma},
		{'.', '>', KeyDot},
		{'/', '?', KeySlash},
	}
	for _, p := range plain {
		t[p.char] = asciiEntry{usage: p.usage}
		t[p.shifted] = asciiEntry{usage: p.usage, shift: true}
	}

	t[' '] = asciiEntry{usage: KeySpace}
	t['\n'] = asciiEntry{usage: KeyEnter}
	t['\r'] = asciiEntry{usage: KeyEnter}
	t['\t'] = asciiEntry{usage: KeyTab}
	t['\b'] = asciiEntry{usage: KeyBackspace}
	t[0x1B] = asciiEntry{usage: KeyEscape}
	return t
}()

// Lookup returns the usage for ch and whether it needs Left Shift on a US
// layout. ok is false for characters with no key.
func Lookup(ch byte) (usage Usage, shift, ok bool) {
	if ch >= byte(len(usTable)) {
		return KeyNone, false, false
	}
	e := usTable[ch]
	if e.usage == KeyNone {
		return KeyNone, false, false
	}
	return e.usage, e.shift, true
}

// ModifierBits returns the report modifier bits for a key map modifier.
func ModifierBits(m keymap.Modifier) uint8 {
	switch m {
	case keymap.Ctrl:
		return ModLeftCtrl
	case keymap.Shift:
		return ModLeftShift
	case keymap.Alt:
		return ModLeftAlt
	default:
		return 0
	}
}

// Encode builds the press report for ch with the explicit modifier m, adding
// Left Shift when the character requires it.
func Encode(ch byte, m keymap.Modifier) (KeyboardReport, bool) {
	usage, shift, ok := Lookup(ch)
	if !ok {
		return KeyboardReport{}, false
	}
	var r KeyboardReport
	mods := ModifierBits(m)
	if shift {
		mods |= ModLeftShift
	}
	r.Press(mods, usage)
	return r, true
}
