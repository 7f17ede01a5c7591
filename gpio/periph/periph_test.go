package periph

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/ardnew/softkeypad/matrix"
	"github.com/ardnew/softkeypad/pkg"
)

func testPins() (map[string]*gpiotest.Pin, func(string) gpio.PinIO) {
	pins := map[string]*gpiotest.Pin{}
	for _, name := range []string{"R0", "R1", "R2", "R3", "C0", "C1", "C2", "C3", "L0", "L2"} {
		pins[name] = &gpiotest.Pin{N: name, L: gpio.Low}
	}
	return pins, func(name string) gpio.PinIO {
		p, ok := pins[name]
		if !ok {
			return nil
		}
		return p
	}
}

var names = Pins{
	Rows: [4]string{"R0", "R1", "R2", "R3"},
	Cols: [4]string{"C0", "C1", "C2", "C3"},
	LEDs: [3]string{"L0", "", "L2"},
}

func TestOpenWithConfiguresPins(t *testing.T) {
	pins, lookup := testPins()
	pins["L0"].L = gpio.High

	lines, err := OpenWith(lookup, names)
	if err != nil {
		t.Fatalf("OpenWith() error = %v", err)
	}
	for _, n := range names.Rows {
		if pins[n].L != gpio.High {
			t.Errorf("row %s idles %v, want high", n, pins[n].L)
		}
	}
	for _, n := range names.Cols {
		if pins[n].P != gpio.PullUp {
			t.Errorf("column %s pull = %v, want PullUp", n, pins[n].P)
		}
	}
	if pins["L0"].L != gpio.Low {
		t.Error("LED 0 not turned off")
	}
	if lines.LEDs[1] != nil {
		t.Error("unnamed LED slot was configured")
	}
}

func TestOpenWithMissingPin(t *testing.T) {
	_, lookup := testPins()
	bad := names
	bad.Cols[2] = "nope"
	if _, err := OpenWith(lookup, bad); !errors.Is(err, pkg.ErrPinNotFound) {
		t.Errorf("OpenWith() error = %v, want ErrPinNotFound", err)
	}
}

func TestOutputDrive(t *testing.T) {
	p := &gpiotest.Pin{N: "X"}
	out, err := NewOutput(p, matrix.High)
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	if p.L != gpio.High {
		t.Fatal("initial level not applied")
	}
	out.Drive(matrix.Low)
	if p.L != gpio.Low {
		t.Error("Drive(Low) did not lower the pin")
	}
	out.Drive(matrix.High)
	if p.L != gpio.High {
		t.Error("Drive(High) did not raise the pin")
	}
}

func TestInputLevel(t *testing.T) {
	p := &gpiotest.Pin{N: "Y"}
	in, err := NewInput(p)
	if err != nil {
		t.Fatalf("NewInput() error = %v", err)
	}
	p.L = gpio.Low
	if in.Level() != matrix.Low {
		t.Error("Level() = high for a low pin")
	}
	p.L = gpio.High
	if in.Level() != matrix.High {
		t.Error("Level() = low for a high pin")
	}
}
