package matrix

import (
	"sync"

	"github.com/ardnew/softkeypad/keymap"
)

// Virtual is an in-memory button matrix. A column reads low exactly when a
// pressed cell in that column sits on a row currently driven low. It is safe
// for concurrent use.
type Virtual struct {
	mutex   sync.Mutex
	pressed [keymap.Rows][keymap.Cols]bool
	driven  [keymap.Rows]Level
}

// NewVirtual returns a matrix with no buttons pressed and all rows high.
func NewVirtual() *Virtual {
	v := &Virtual{}
	for i := range v.driven {
		v.driven[i] = High
	}
	return v
}

// Press closes the button at (row, col).
func (v *Virtual) Press(row, col int) {
	v.set(row, col, true)
}

// Release opens the button at (row, col).
func (v *Virtual) Release(row, col int) {
	v.set(row, col, false)
}

// Toggle flips the button at (row, col) and returns its new state.
func (v *Virtual) Toggle(row, col int) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if !inRange(row, col) {
		return false
	}
	v.pressed[row][col] = !v.pressed[row][col]
	return v.pressed[row][col]
}

// ReleaseAll opens every button.
func (v *Virtual) ReleaseAll() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.pressed = [keymap.Rows][keymap.Cols]bool{}
}

// Pressed reports whether the button at (row, col) is closed.
func (v *Virtual) Pressed(row, col int) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return inRange(row, col) && v.pressed[row][col]
}

// Idle reports whether every row is at its inactive (high) level.
func (v *Virtual) Idle() bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	for _, l := range v.driven {
		if l != High {
			return false
		}
	}
	return true
}

// Rows returns the row output lines.
func (v *Virtual) Rows() [keymap.Rows]OutputLine {
	var rows [keymap.Rows]OutputLine
	for i := range rows {
		rows[i] = virtualRow{v: v, index: i}
	}
	return rows
}

// Cols returns the column input lines.
func (v *Virtual) Cols() [keymap.Cols]InputLine {
	var cols [keymap.Cols]InputLine
	for i := range cols {
		cols[i] = virtualCol{v: v, index: i}
	}
	return cols
}

func (v *Virtual) set(row, col int, pressed bool) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if inRange(row, col) {
		v.pressed[row][col] = pressed
	}
}

func inRange(row, col int) bool {
	return row >= 0 && row < keymap.Rows && col >= 0 && col < keymap.Cols
}

type virtualRow struct {
	v     *Virtual
	index int
}

func (r virtualRow) Drive(level Level) {
	r.v.mutex.Lock()
	r.v.driven[r.index] = level
	r.v.mutex.Unlock()
}

type virtualCol struct {
	v     *Virtual
	index int
}

func (c virtualCol) Level() Level {
	c.v.mutex.Lock()
	defer c.v.mutex.Unlock()
	for r := range c.v.driven {
		if c.v.driven[r] == Low && c.v.pressed[r][c.index] {
			return Low
		}
	}
	return High
}
