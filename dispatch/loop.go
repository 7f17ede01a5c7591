package dispatch

import (
	"context"
	"runtime"
	"time"

	"github.com/ardnew/softkeypad/engine"
	"github.com/ardnew/softkeypad/hid"
	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/pkg"
)

// DefaultPollInterval is the pause between loop iterations.
const DefaultPollInterval = time.Millisecond

// Indicator displays the engine state, e.g. on status LEDs.
type Indicator interface {
	Show(snap engine.Snapshot)
}

// Option configures a [Loop].
type Option func(*Loop)

// WithTickPeriod sets the period the engine is ticked at.
func WithTickPeriod(d time.Duration) Option {
	return func(l *Loop) {
		l.period = d
	}
}

// WithPollInterval sets the pause between iterations of Run. Zero yields
// the processor instead of sleeping.
func WithPollInterval(d time.Duration) Option {
	return func(l *Loop) {
		l.poll = d
	}
}

// WithIndicator shows every change of engine state on ind.
func WithIndicator(ind Indicator) Option {
	return func(l *Loop) {
		l.indicator = ind
	}
}

// Loop is the dispatch loop.
type Loop struct {
	scanner   engine.Scanner
	engine    *engine.Engine
	transport hid.Transport
	ticker    Ticker

	period    time.Duration
	poll      time.Duration
	indicator Indicator

	shown    engine.Snapshot
	hasShown bool
	sent     uint64
}

// New creates a dispatch loop. scanner is polled while idle, eng is ticked
// by ticker during a keypress cycle and keystrokes go out through transport.
func New(scanner engine.Scanner, eng *engine.Engine, transport hid.Transport, ticker Ticker, opts ...Option) *Loop {
	l := &Loop{
		scanner:   scanner,
		engine:    eng,
		transport: transport,
		ticker:    ticker,
		period:    engine.DefaultTickPeriod,
		poll:      DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Sent returns the number of keystrokes transmitted successfully.
func (l *Loop) Sent() uint64 {
	return l.sent
}

// Step runs one iteration of the loop. Transmission errors are logged and
// do not stop the iteration; the first one is returned.
func (l *Loop) Step(ctx context.Context) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	for {
		req, ok := l.engine.Next()
		if !ok {
			break
		}
		keep(l.send(ctx, req.Key, "repeat"))
	}

	if l.engine.Dormant() {
		if key := l.scanner.Scan(); !key.IsNone() {
			l.engine.Attach(key, l.ticker.Stop)
			keep(l.send(ctx, key, "press"))
			l.ticker.Start(l.period, l.engine.Tick)
		}
	}

	l.show()
	return first
}

// Run calls Step until ctx is done. It disarms the ticker on return.
func (l *Loop) Run(ctx context.Context) error {
	defer l.ticker.Stop()

	pkg.LogInfo(pkg.ComponentDispatch, "dispatch loop started",
		"tickPeriod", l.period,
		"pollInterval", l.poll)

	var timer *time.Timer
	if l.poll > 0 {
		timer = time.NewTimer(l.poll)
		defer timer.Stop()
	}

	for {
		_ = l.Step(ctx)

		if timer == nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				runtime.Gosched()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(l.poll)
		}
	}
}

func (l *Loop) send(ctx context.Context, key keymap.Key, reason string) error {
	if err := hid.Send(ctx, l.transport, key); err != nil {
		pkg.LogError(pkg.ComponentDispatch, "transmit failed",
			"key", key.String(),
			"reason", reason,
			"error", err)
		return err
	}
	l.sent++
	pkg.LogDebug(pkg.ComponentDispatch, "key sent",
		"key", key.String(),
		"reason", reason)
	return nil
}

func (l *Loop) show() {
	if l.indicator == nil {
		return
	}
	snap := l.engine.Snapshot()
	snap.Ticks = 0
	if l.hasShown && snap == l.shown {
		return
	}
	l.shown, l.hasShown = snap, true
	l.indicator.Show(snap)
}
