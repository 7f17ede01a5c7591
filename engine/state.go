package engine

import (
	"time"

	"github.com/ardnew/softkeypad/keymap"
)

// State is the engine state.
type State uint8

// Engine states.
const (
	Idle                  State = iota // No tick seen since the key was latched
	Debouncing                         // Absorbing contact bounce
	WaitingForFirstRepeat              // Long initial repeat delay
	WaitingForNextRepeat               // Fast auto-repeat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case WaitingForFirstRepeat:
		return "waiting-first-repeat"
	case WaitingForNextRepeat:
		return "waiting-next-repeat"
	default:
		return "unknown"
	}
}

// DefaultTickPeriod is the timer period the default thresholds assume.
const DefaultTickPeriod = 5 * time.Millisecond

// Thresholds are tick counts that end each timed state.
type Thresholds struct {
	Debounce    uint32
	FirstRepeat uint32
	NextRepeat  uint32
}

// DefaultThresholds returns 2 ticks of debounce, a 100 tick first-repeat
// delay and a repeat every tick after that.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Debounce:    2,
		FirstRepeat: 100,
		NextRepeat:  1,
	}
}

// Outcome is the result of one tick.
type Outcome struct {
	State    State
	Ticks    uint32
	Send     bool // A repeat of the latched key is due
	Released bool // The latched key is no longer pressed
}

// Step advances the machine by one tick. ticks is the counter value on
// entry, active is the latched key and scanned the result of this tick's
// scan. The returned counter includes the increment that ends every tick;
// a release returns the machine to Idle with a zero counter.
func Step(state State, ticks uint32, active, scanned keymap.Key, th Thresholds) Outcome {
	out := Outcome{State: state, Ticks: ticks}

	switch state {
	case Idle:
		out.Ticks = 0
		out.State = Debouncing

	case Debouncing:
		if scanned != active {
			return Outcome{State: Idle, Released: true}
		}
		if ticks >= th.Debounce {
			out.Ticks = 0
			out.State = WaitingForFirstRepeat
		}

	case WaitingForFirstRepeat:
		if scanned != active {
			return Outcome{State: Idle, Released: true}
		}
		if ticks >= th.FirstRepeat {
			out.Ticks = 0
			out.State = WaitingForNextRepeat
			out.Send = true
		}

	case WaitingForNextRepeat:
		if scanned != active {
			return Outcome{State: Idle, Released: true}
		}
		if ticks >= th.NextRepeat {
			out.Ticks = 0
			out.Send = true
		}

	default:
		return Outcome{State: Idle, Released: true}
	}

	out.Ticks++
	return out
}
