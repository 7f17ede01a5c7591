package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ardnew/softkeypad/engine"
	"github.com/ardnew/softkeypad/hid"
	"github.com/ardnew/softkeypad/keymap"
	"github.com/ardnew/softkeypad/matrix"
)

// manualTicker fires only when the test says so.
type manualTicker struct {
	armed  bool
	period time.Duration
	fn     func()
	starts int
	stops  int
	fired  int
}

func (m *manualTicker) Start(period time.Duration, fn func()) {
	m.armed, m.period, m.fn = true, period, fn
	m.starts++
}

func (m *manualTicker) Stop() {
	m.armed = false
	m.stops++
}

func (m *manualTicker) fire() bool {
	if !m.armed {
		return false
	}
	m.fired++
	m.fn()
	return true
}

type harness struct {
	t       *testing.T
	matrix  *matrix.Virtual
	engine  *engine.Engine
	ticker  *manualTicker
	rec     *hid.Recorder
	loop    *Loop
	elapsed time.Duration
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	v := matrix.NewVirtual()
	scanner, err := matrix.New(v.Rows(), v.Cols(), keymap.Default())
	if err != nil {
		t.Fatalf("matrix.New() error = %v", err)
	}
	h := &harness{
		t:      t,
		matrix: v,
		engine: engine.New(scanner),
		ticker: &manualTicker{},
		rec:    hid.NewRecorder(),
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h.rec.SetClock(func() time.Time { return start.Add(h.elapsed) })
	h.loop = New(scanner, h.engine, h.rec, h.ticker, opts...)
	return h
}

func (h *harness) press(ch byte) {
	h.t.Helper()
	row, col, ok := keymap.Default().Find(ch)
	if !ok {
		h.t.Fatalf("no cell for %q", ch)
	}
	h.matrix.Press(row, col)
}

func (h *harness) release(ch byte) {
	row, col, _ := keymap.Default().Find(ch)
	h.matrix.Release(row, col)
}

func (h *harness) step() {
	h.t.Helper()
	if err := h.loop.Step(context.Background()); err != nil {
		h.t.Fatalf("Step() error = %v", err)
	}
}

// tick advances time by one period, fires the ticker and runs the loop.
func (h *harness) tick(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		h.elapsed += engine.DefaultTickPeriod
		h.ticker.fire()
		h.step()
	}
}

func TestIdleLoopSendsNothing(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 10; i++ {
		h.step()
	}
	if h.rec.Len() != 0 || h.ticker.starts != 0 {
		t.Errorf("idle loop sent %d, armed %d times", h.rec.Len(), h.ticker.starts)
	}
}

func TestPressSendsImmediately(t *testing.T) {
	h := newHarness(t)
	h.press('5')
	h.step()

	sent := h.rec.Sent()
	if len(sent) != 1 || sent[0].Key != (keymap.Key{Char: '5'}) {
		t.Fatalf("Sent() = %+v, want one '5'", sent)
	}
	if !h.ticker.armed || h.ticker.period != engine.DefaultTickPeriod {
		t.Errorf("ticker armed=%v period=%v", h.ticker.armed, h.ticker.period)
	}

	// Still held: no rescans while attached, so no second press.
	h.step()
	h.step()
	if h.rec.Len() != 1 || h.ticker.starts != 1 {
		t.Errorf("loop re-latched a held key: sent=%d starts=%d", h.rec.Len(), h.ticker.starts)
	}
}

func TestHoldFiveFor600Ticks(t *testing.T) {
	h := newHarness(t)
	h.press('5')
	h.step()
	h.tick(600)

	sent := h.rec.Sent()
	// immediate + one per tick from tick 103 through 600
	if want := 1 + 498; len(sent) != want {
		t.Fatalf("sent %d keystrokes, want %d", len(sent), want)
	}
	for i, s := range sent {
		if s.Key != (keymap.Key{Char: '5'}) {
			t.Fatalf("keystroke %d = %v, want 5", i, s.Key)
		}
	}

	start := sent[0].At
	if d := sent[1].At.Sub(start); d != 103*engine.DefaultTickPeriod {
		t.Errorf("first repeat after %v, want %v", d, 103*engine.DefaultTickPeriod)
	}
	for i := 2; i < len(sent); i++ {
		if d := sent[i].At.Sub(sent[i-1].At); d != engine.DefaultTickPeriod {
			t.Fatalf("repeat %d spaced %v, want %v", i, d, engine.DefaultTickPeriod)
		}
	}

	h.release('5')
	h.tick(1)
	if !h.engine.Dormant() || h.ticker.armed {
		t.Errorf("after release: dormant=%v armed=%v", h.engine.Dormant(), h.ticker.armed)
	}
	h.tick(5)
	if h.rec.Len() != len(sent) {
		t.Errorf("keystrokes after release: %d", h.rec.Len()-len(sent))
	}
}

func TestQuickReleaseSendsOnce(t *testing.T) {
	h := newHarness(t)
	h.press('a')
	h.step()
	h.tick(1)
	h.release('a')
	h.tick(1)

	sent := h.rec.Sent()
	if len(sent) != 1 || sent[0].Key != (keymap.Key{Char: 'a', Mod: keymap.Ctrl}) {
		t.Fatalf("Sent() = %+v, want one ctrl+a", sent)
	}
	if !h.engine.Dormant() {
		t.Errorf("engine not dormant: %+v", h.engine.Snapshot())
	}
	if h.ticker.armed || h.ticker.stops != 1 {
		t.Errorf("ticker armed=%v stops=%d", h.ticker.armed, h.ticker.stops)
	}
	if h.engine.Pending() != 0 {
		t.Errorf("pending = %d", h.engine.Pending())
	}
}

func TestSecondPressAfterRelease(t *testing.T) {
	h := newHarness(t)
	h.press('1')
	h.step()
	h.tick(3)
	h.release('1')
	h.tick(1)

	h.press('9')
	h.step()
	sent := h.rec.Sent()
	if len(sent) != 2 || sent[1].Key.Char != '9' {
		t.Fatalf("Sent() = %+v, want 1 then 9", sent)
	}
	if h.ticker.starts != 2 {
		t.Errorf("ticker started %d times, want 2", h.ticker.starts)
	}
}

func TestSwitchKeyWhileHeld(t *testing.T) {
	h := newHarness(t)
	h.press('2')
	h.step()
	h.tick(10)
	h.release('2')
	h.press('3')
	h.tick(1) // engine sees a different key and ends the cycle
	// the same iteration rescans and latches '3'
	sent := h.rec.Sent()
	if len(sent) != 2 || sent[1].Key.Char != '3' {
		t.Fatalf("Sent() = %+v, want 2 then 3", sent)
	}
}

func TestRepeatsAreNotLostWhenLoopLags(t *testing.T) {
	h := newHarness(t)
	h.press('7')
	h.step()
	// ticks without loop iterations in between
	for i := 0; i < 110; i++ {
		h.ticker.fire()
	}
	h.step()
	if got := h.rec.Len(); got != 1+8 {
		t.Errorf("sent %d keystrokes, want 9", got)
	}
}

func TestTransportErrorDoesNotStopLoop(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("host asleep")
	h.rec.FailWith(boom)
	h.press('4')
	err := h.loop.Step(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Step() error = %v, want %v", err, boom)
	}
	if !h.ticker.armed {
		t.Error("failed transmission prevented arming the ticker")
	}
	h.rec.FailWith(nil)
	h.tick(103)
	if h.rec.Len() != 1 {
		t.Errorf("repeat after recovery: sent %d, want 1", h.rec.Len())
	}
	if h.loop.Sent() != 1 {
		t.Errorf("Sent() = %d, want 1", h.loop.Sent())
	}
}

type recordingIndicator struct {
	shown []engine.Snapshot
}

func (r *recordingIndicator) Show(s engine.Snapshot) { r.shown = append(r.shown, s) }

func TestIndicatorSeesStateChanges(t *testing.T) {
	ind := &recordingIndicator{}
	h := newHarness(t, WithIndicator(ind))
	h.step()
	h.step()
	h.press('0')
	h.step()
	h.tick(5)
	h.release('0')
	h.tick(1)

	var states []engine.State
	for _, s := range ind.shown {
		states = append(states, s.State)
	}
	want := []engine.State{engine.Idle, engine.Idle, engine.Debouncing, engine.WaitingForFirstRepeat, engine.Idle}
	if len(states) != len(want) {
		t.Fatalf("shown states %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("shown states %v, want %v", states, want)
		}
	}
	if !ind.shown[1].Attached || ind.shown[4].Attached {
		t.Errorf("attached flags wrong: %+v", ind.shown)
	}
}

func TestRunWithPeriodicTicker(t *testing.T) {
	v := matrix.NewVirtual()
	scanner, err := matrix.New(v.Rows(), v.Cols(), keymap.Default())
	if err != nil {
		t.Fatalf("matrix.New() error = %v", err)
	}
	eng := engine.New(scanner, engine.WithThresholds(engine.Thresholds{Debounce: 1, FirstRepeat: 2, NextRepeat: 1}))
	rec := hid.NewRecorder()
	ticker := NewPeriodicTicker()
	loop := New(scanner, eng, rec, ticker,
		WithTickPeriod(time.Millisecond),
		WithPollInterval(100*time.Microsecond))

	v.Press(3, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := loop.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v", err)
	}

	sent := rec.Sent()
	if len(sent) < 2 {
		t.Fatalf("sent %d keystrokes in 200ms, want repeats", len(sent))
	}
	for _, s := range sent {
		if s.Key.Char != '0' {
			t.Fatalf("sent %v, want 0", s.Key)
		}
	}
	if ticker.Armed() {
		t.Error("Run left the ticker armed")
	}
}

func TestRunBusyPoll(t *testing.T) {
	h := newHarness(t, WithPollInterval(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want Canceled", err)
	}
}

func TestPeriodicTickerStopFromCallback(t *testing.T) {
	p := NewPeriodicTicker()
	var calls atomic.Int32
	done := make(chan struct{})
	p.Start(time.Millisecond, func() {
		if calls.Add(1) == 3 {
			p.Stop()
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker never reached 3 calls")
	}
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != 3 {
		t.Errorf("calls after Stop = %d, want 3", got)
	}
	if p.Armed() {
		t.Error("Armed() after Stop")
	}
	p.Stop()
}

func TestPeriodicTickerRestart(t *testing.T) {
	p := NewPeriodicTicker()
	var first, second atomic.Int32
	p.Start(time.Millisecond, func() { first.Add(1) })
	time.Sleep(10 * time.Millisecond)
	p.Start(time.Millisecond, func() { second.Add(1) })
	time.Sleep(5 * time.Millisecond)
	before := first.Load()
	time.Sleep(20 * time.Millisecond)
	p.Stop()
	if first.Load() != before {
		t.Error("replaced arming kept running")
	}
	if second.Load() == 0 {
		t.Error("new arming never ran")
	}
}
