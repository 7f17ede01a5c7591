package dispatch

import (
	"sync"
	"time"
)

// Ticker calls a function periodically until stopped.
type Ticker interface {
	// Start arms the ticker to call fn every period. Calls never overlap.
	Start(period time.Duration, fn func())

	// Stop disarms the ticker. It may be called from within fn.
	Stop()
}

// PeriodicTicker is a [Ticker] backed by time.Ticker. Each arming runs fn on
// its own goroutine, so fn is never reentered.
type PeriodicTicker struct {
	mutex sync.Mutex
	stop  chan struct{}
}

// NewPeriodicTicker creates a disarmed ticker.
func NewPeriodicTicker() *PeriodicTicker {
	return &PeriodicTicker{}
}

// Start arms the ticker, replacing any previous arming.
func (p *PeriodicTicker) Start(period time.Duration, fn func()) {
	p.mutex.Lock()
	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop
	p.mutex.Unlock()

	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				select {
				case <-stop:
					return
				default:
				}
				fn()
			}
		}
	}()
}

// Stop disarms the ticker. The goroutine exits once any call in progress
// returns.
func (p *PeriodicTicker) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// Armed reports whether the ticker is running.
func (p *PeriodicTicker) Armed() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.stop != nil
}

var _ Ticker = (*PeriodicTicker)(nil)
