// Package periph adapts periph.io GPIO pins to the keypad line interfaces.
//
// Row pins become push-pull outputs idling high, column pins become inputs
// with the internal pull-up enabled and status pins become outputs idling
// low:
//
//	if err := periph.Init(); err != nil {
//	    return err
//	}
//	lines, err := periph.Open(periph.Pins{
//	    Rows: [4]string{"GPIO4", "GPIO17", "GPIO27", "GPIO22"},
//	    Cols: [4]string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"},
//	})
//	scanner, err := matrix.New(lines.Rows, lines.Cols, keymap.Default())
//
// Pin write errors are logged rather than returned, since a scan has no
// failure path.
package periph
