package hid

import (
	"context"
	"sync"
	"time"

	"github.com/ardnew/softkeypad/keymap"
)

// Sent is one transmission seen by a [Recorder].
type Sent struct {
	Key keymap.Key
	At  time.Time
}

// Recorder is a [Transport] that records every transmission in memory.
type Recorder struct {
	mutex sync.Mutex
	sent  []Sent
	now   func() time.Time
	err   error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// SetClock replaces the timestamp source.
func (r *Recorder) SetClock(now func() time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.now = now
}

// FailWith makes subsequent transmissions return err without recording.
// A nil err restores normal operation.
func (r *Recorder) FailWith(err error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.err = err
}

// Print records ch with no modifier.
func (r *Recorder) Print(ctx context.Context, ch byte) error {
	return r.record(ctx, keymap.Key{Char: ch})
}

// KeyCode records ch with modifier m.
func (r *Recorder) KeyCode(ctx context.Context, ch byte, m keymap.Modifier) error {
	return r.record(ctx, keymap.Key{Char: ch, Mod: m})
}

func (r *Recorder) record(ctx context.Context, k keymap.Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, Sent{Key: k, At: r.now()})
	return nil
}

// Sent returns a copy of every recorded transmission.
func (r *Recorder) Sent() []Sent {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// Len returns the number of recorded transmissions.
func (r *Recorder) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.sent)
}

// Reset discards the recorded transmissions.
func (r *Recorder) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.sent = nil
}

var _ Transport = (*Recorder)(nil)
