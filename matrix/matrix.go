package matrix

import (
	"fmt"

	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// Level is a logic level on a GPIO line.
type Level bool

// Logic levels.
const (
	Low  Level = false
	High Level = true
)

// String returns "high" or "low".
func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// OutputLine is a row output.
type OutputLine interface {
	Drive(level Level)
}

// InputLine is a column input with pull-up bias.
type InputLine interface {
	Level() Level
}

// Scanner resolves the currently pressed key of a button matrix.
type Scanner struct {
	rows [keymap.Rows]OutputLine
	cols [keymap.Cols]InputLine
	keys keymap.KeyMap
}

// New creates a scanner owning the given lines and drives every row to its
// inactive (high) level.
func New(rows [keymap.Rows]OutputLine, cols [keymap.Cols]InputLine, keys keymap.KeyMap) (*Scanner, error) {
	for i, r := range rows {
		if r == nil {
			return nil, fmt.Errorf("row %d: %w", i, pkg.ErrInvalidLine)
		}
	}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d: %w", i, pkg.ErrInvalidLine)
		}
	}
	s := &Scanner{rows: rows, cols: cols, keys: keys}
	for _, r := range s.rows {
		r.Drive(High)
	}
	return s, nil
}

// KeyMap returns the key map the scanner translates through.
func (s *Scanner) KeyMap() keymap.KeyMap {
	return s.keys
}

// Scan sweeps the matrix row-major, column-minor and returns the key of the
// last pressed cell, or [keymap.NoKey]. All rows are high on return.
func (s *Scanner) Scan() keymap.Key {
	row, col := -1, -1
	for r, out := range s.rows {
		out.Drive(Low)
		for c, in := range s.cols {
			if in.Level() == Low {
				row, col = r, c
			}
		}
		out.Drive(High)
	}
	if row < 0 {
		return keymap.NoKey
	}
	return s.keys.At(row, col)
}
