// Package dispatch runs the control loop that turns matrix scans into
// transmitted keystrokes.
//
// Each [Loop.Step] first transmits every repeat the engine has queued, then,
// if no keypress cycle is in progress, scans the matrix. A newly pressed key
// is latched into the engine, transmitted at once, and a [Ticker] is armed
// to call [engine.Engine.Tick] every period until the engine reports the key
// released. Debounce therefore only delays repeats, never the first
// keystroke.
//
// [Loop.Run] repeats Step until its context is cancelled:
//
//	loop := dispatch.New(scanner, eng, transport, dispatch.NewPeriodicTicker())
//	err := loop.Run(ctx)
package dispatch
