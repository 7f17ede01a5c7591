// Package status drives the three diagnostic LEDs next to the keypad.
package status

import (
	"github.com/ardnew/softkeypad/engine"
	"github.com/ardnew/softkeypad/matrix"
)

// Lines is the number of indicator outputs.
const Lines = 3

// LED bits written by Show.
const (
	LEDAttached  = 1 << 0 // A key is latched
	LEDDebounce  = 1 << 1 // Debouncing or waiting for the first repeat
	LEDRepeating = 1 << 2 // Fast auto-repeat
)

// Bus writes a small value across three output lines, bit i on line i.
type Bus struct {
	lines [Lines]matrix.OutputLine
	value uint8
}

// NewBus creates a bus on lines and turns every line off. Nil lines are
// skipped, so boards with fewer LEDs can leave slots empty.
func NewBus(lines [Lines]matrix.OutputLine) *Bus {
	b := &Bus{lines: lines}
	b.Write(0)
	return b
}

// Write drives bit i of v onto line i.
func (b *Bus) Write(v uint8) {
	b.value = v & (1<<Lines - 1)
	for i, l := range b.lines {
		if l == nil {
			continue
		}
		l.Drive(matrix.Level(b.value&(1<<i) != 0))
	}
}

// Value returns the last value written.
func (b *Bus) Value() uint8 {
	return b.value
}

// Pattern encodes an engine snapshot as LED bits.
func Pattern(snap engine.Snapshot) uint8 {
	var v uint8
	if snap.Attached {
		v |= LEDAttached
	}
	switch snap.State {
	case engine.Debouncing, engine.WaitingForFirstRepeat:
		v |= LEDDebounce
	case engine.WaitingForNextRepeat:
		v |= LEDRepeating
	}
	return v
}

// Show writes the pattern for snap. It makes a Bus a dispatch indicator.
func (b *Bus) Show(snap engine.Snapshot) {
	b.Write(Pattern(snap))
}
