package engine

import (
	"sync"

	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// Scanner reports the currently pressed key.
type Scanner interface {
	Scan() keymap.Key
}

// Snapshot is a consistent copy of the engine's shared state.
type Snapshot struct {
	State    State
	Ticks    uint32
	Active   keymap.Key
	Attached bool
}

// Dormant reports whether no keypress cycle is in progress.
func (s Snapshot) Dormant() bool {
	return !s.Attached && s.State == Idle
}

// Option configures an [Engine].
type Option func(*Engine)

// WithThresholds overrides the default tick thresholds.
func WithThresholds(th Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = th
	}
}

// Engine drives [Step] from a periodic timer callback.
type Engine struct {
	scanner    Scanner
	thresholds Thresholds

	mutex    sync.Mutex
	state    State
	ticks    uint32
	active   keymap.Key
	attached bool
	detach   func()
	seq      uint64
	dropped  uint64

	requests Queue
}

// New creates an idle engine that rescans through scanner on every tick.
func New(scanner Scanner, opts ...Option) *Engine {
	e := &Engine{
		scanner:    scanner,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the tick thresholds in use.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Attach latches key as the active key and starts a keypress cycle in Idle.
// detach is called from Tick when the key is released, and should disarm
// the timer driving Tick. It runs with the engine locked, so the engine is
// not reported dormant until the timer is disarmed; it must not call back
// into the engine.
func (e *Engine) Attach(key keymap.Key, detach func()) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.state = Idle
	e.ticks = 0
	e.active = key
	e.attached = true
	e.detach = detach
	pkg.LogDebug(pkg.ComponentEngine, "key attached", "key", key.String())
}

// Tick advances the machine by one timer period. It must not be called
// concurrently with itself.
func (e *Engine) Tick() {
	e.mutex.Lock()
	if !e.attached {
		e.mutex.Unlock()
		return
	}
	state, ticks, active := e.state, e.ticks, e.active
	e.mutex.Unlock()

	scanned := e.scanner.Scan()
	out := Step(state, ticks, active, scanned, e.thresholds)

	e.mutex.Lock()
	e.state = out.State
	e.ticks = out.Ticks
	if out.Released {
		e.attached = false
		e.active = keymap.NoKey
		if e.detach != nil {
			e.detach()
			e.detach = nil
		}
	}
	if out.Send {
		e.seq++
		if !e.requests.Push(Request{Key: active, Seq: e.seq}) {
			e.dropped++
			pkg.LogWarn(pkg.ComponentEngine, "repeat dropped",
				"key", active.String(),
				"seq", e.seq,
				"error", pkg.ErrQueueFull)
		}
	}
	e.mutex.Unlock()

	if state != out.State {
		pkg.LogDebug(pkg.ComponentEngine, "state changed",
			"from", state.String(),
			"to", out.State.String(),
			"key", active.String())
	}
	if out.Released {
		pkg.LogDebug(pkg.ComponentEngine, "key released", "key", active.String())
	}
}

// Next pops the oldest pending send request. Only one goroutine may call
// Next.
func (e *Engine) Next() (Request, bool) {
	return e.requests.Pop()
}

// Pending returns the number of send requests not yet taken by Next.
func (e *Engine) Pending() int {
	return e.requests.Len()
}

// Dropped returns the number of send requests lost to a full queue.
func (e *Engine) Dropped() uint64 {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.dropped
}

// Dormant reports whether no key is attached and the machine is Idle.
func (e *Engine) Dormant() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return !e.attached && e.state == Idle
}

// Snapshot returns a copy of the shared state.
func (e *Engine) Snapshot() Snapshot {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return Snapshot{
		State:    e.state,
		Ticks:    e.ticks,
		Active:   e.active,
		Attached: e.attached,
	}
}
