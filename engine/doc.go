// Package engine implements the debounce and auto-repeat state machine that
// runs while a key is held.
//
// A keypress cycle begins when the dispatch loop latches a freshly scanned
// key with [Engine.Attach] and arms a periodic timer whose callback is
// [Engine.Tick]. Each tick rescans the matrix and advances the machine:
//
//	Idle                  → Debouncing (unconditionally)
//	Debouncing            → WaitingForFirstRepeat after Thresholds.Debounce ticks
//	WaitingForFirstRepeat → WaitingForNextRepeat after Thresholds.FirstRepeat ticks, sending
//	WaitingForNextRepeat  → itself every Thresholds.NextRepeat ticks, sending
//
// A scan that no longer matches the latched key ends the cycle in every
// state but Idle. Repeats are raised as [Request] values on a
// single-producer/single-consumer [Queue] drained by the dispatch loop.
//
// The transition itself is the pure function [Step], so the whole machine
// can be exercised without a timer.
package engine
