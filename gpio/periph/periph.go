package periph

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/matrix"
	"github.com/ardnew/softkeypad/pkg"
	"github.com/ardnew/softkeypad/status"
)

// Init loads the periph.io host drivers. It must run before Open.
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

// Pins names the GPIO pins of a keypad. Empty LED names are skipped.
type Pins struct {
	Rows [keymap.Rows]string
	Cols [keymap.Cols]string
	LEDs [status.Lines]string
}

// Lines holds the configured keypad lines.
type Lines struct {
	Rows [keymap.Rows]matrix.OutputLine
	Cols [keymap.Cols]matrix.InputLine
	LEDs [status.Lines]matrix.OutputLine
}

// Open looks up every pin through gpioreg and configures it.
func Open(pins Pins) (Lines, error) {
	return OpenWith(gpioreg.ByName, pins)
}

// OpenWith is Open with a custom pin lookup.
func OpenWith(lookup func(name string) gpio.PinIO, pins Pins) (Lines, error) {
	var lines Lines
	for i, name := range pins.Rows {
		p, err := find(lookup, name)
		if err != nil {
			return Lines{}, fmt.Errorf("row %d: %w", i, err)
		}
		out, err := NewOutput(p, matrix.High)
		if err != nil {
			return Lines{}, fmt.Errorf("row %d: %w", i, err)
		}
		lines.Rows[i] = out
	}
	for i, name := range pins.Cols {
		p, err := find(lookup, name)
		if err != nil {
			return Lines{}, fmt.Errorf("column %d: %w", i, err)
		}
		in, err := NewInput(p)
		if err != nil {
			return Lines{}, fmt.Errorf("column %d: %w", i, err)
		}
		lines.Cols[i] = in
	}
	for i, name := range pins.LEDs {
		if name == "" {
			continue
		}
		p, err := find(lookup, name)
		if err != nil {
			return Lines{}, fmt.Errorf("led %d: %w", i, err)
		}
		out, err := NewOutput(p, matrix.Low)
		if err != nil {
			return Lines{}, fmt.Errorf("led %d: %w", i, err)
		}
		lines.LEDs[i] = out
	}
	pkg.LogInfo(pkg.ComponentGPIO, "keypad pins configured",
		"rows", pins.Rows,
		"cols", pins.Cols)
	return lines, nil
}

func find(lookup func(string) gpio.PinIO, name string) (gpio.PinIO, error) {
	p := lookup(name)
	if p == nil {
		return nil, fmt.Errorf("%q: %w", name, pkg.ErrPinNotFound)
	}
	return p, nil
}

// Output is a periph pin driven as a row or status output.
type Output struct {
	pin gpio.PinOut
}

// NewOutput configures pin as an output at the initial level.
func NewOutput(pin gpio.PinOut, initial matrix.Level) (*Output, error) {
	if err := pin.Out(gpio.Level(initial)); err != nil {
		return nil, fmt.Errorf("%s: %w", pin, err)
	}
	return &Output{pin: pin}, nil
}

// Drive sets the pin level.
func (o *Output) Drive(level matrix.Level) {
	if err := o.pin.Out(gpio.Level(level)); err != nil {
		pkg.LogError(pkg.ComponentGPIO, "pin write failed",
			"pin", o.pin.String(),
			"level", level.String(),
			"error", err)
	}
}

// Input is a periph pin read as a pulled-up column.
type Input struct {
	pin gpio.PinIn
}

// NewInput configures pin as an input with pull-up and no edge detection.
func NewInput(pin gpio.PinIn) (*Input, error) {
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("%s: %w", pin, err)
	}
	return &Input{pin: pin}, nil
}

// Level reads the pin.
func (i *Input) Level() matrix.Level {
	return matrix.Level(i.pin.Read())
}

var (
	_ matrix.OutputLine = (*Output)(nil)
	_ matrix.InputLine  = (*Input)(nil)
)
