package keymap

import (
	"fmt"
	"strings"

	"github.com/ardnew/softkeypad/pkg"
)

// Matrix dimensions.
const (
	Rows = 4
	Cols = 4
)

// Modifier is the modifier key sent together with a character.
type Modifier uint8

// Modifier values.
const (
	None Modifier = iota
	Ctrl
	Shift
	Alt
)

// String returns a human-readable modifier name.
func (m Modifier) String() string {
	switch m {
	case None:
		return "none"
	case Ctrl:
		return "ctrl"
	case Shift:
		return "shift"
	case Alt:
		return "alt"
	default:
		return fmt.Sprintf("modifier(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the defined modifiers.
func (m Modifier) Valid() bool {
	return m <= Alt
}

// Key is a character with its modifier. It is both the content of a key map
// cell and the result of a matrix scan.
type Key struct {
	Char byte
	Mod  Modifier
}

// NoKey is the scan result when no cell is pressed.
var NoKey = Key{}

// IsNone reports whether k is the no-key sentinel.
func (k Key) IsNone() bool {
	return k.Char == 0
}

// String returns the key as "5" or "ctrl+a".
func (k Key) String() string {
	if k.IsNone() {
		return "none"
	}
	if k.Mod == None {
		return string(rune(k.Char))
	}
	return k.Mod.String() + "+" + string(rune(k.Char))
}

// KeyMap translates (row, column) to a [Key].
type KeyMap struct {
	chars [Rows][Cols]byte
	mods  [Rows][Cols]Modifier
}

// New builds a key map from parallel character and modifier tables.
func New(chars [Rows][Cols]byte, mods [Rows][Cols]Modifier) (KeyMap, error) {
	for r := range mods {
		for c, m := range mods[r] {
			if !m.Valid() {
				return KeyMap{}, fmt.Errorf("cell (%d,%d) %v: %w", r, c, m, pkg.ErrInvalidKeyMap)
			}
		}
	}
	return KeyMap{chars: chars, mods: mods}, nil
}

// Default returns the layout of the reference keypad:
//
//	1 2 3 a(ctrl)
//	4 5 6 B
//	7 8 9 C
//	* 0 # D
func Default() KeyMap {
	return KeyMap{
		chars: [Rows][Cols]byte{
			{'1', '2', '3', 'a'},
			{'4', '5', '6', 'B'},
			{'7', '8', '9', 'C'},
			{'*', '0', '#', 'D'},
		},
		mods: [Rows][Cols]Modifier{
			{None, None, None, Ctrl},
		},
	}
}

// At returns the key mapped to the given cell. Cells outside the matrix map
// to [NoKey].
func (m KeyMap) At(row, col int) Key {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return NoKey
	}
	return Key{Char: m.chars[row][col], Mod: m.mods[row][col]}
}

// Find returns the first cell in scan order mapped to ch.
func (m KeyMap) Find(ch byte) (row, col int, ok bool) {
	for r := range m.chars {
		for c := range m.chars[r] {
			if m.chars[r][c] == ch {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// String renders the table one row per line.
func (m KeyMap) String() string {
	var b strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(m.At(r, c).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
