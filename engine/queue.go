package engine

import (
	"sync/atomic"

	"github.com/ardnew/softkeypad/keymap"
)

// QueueSize is the capacity of a [Queue].
const QueueSize = 64

// Request asks the dispatch loop to transmit Key.
type Request struct {
	Key keymap.Key
	Seq uint64 // Position in the engine's request sequence
}

// Queue is a fixed-size ring of requests for exactly one producer and one
// consumer. Push and Pop never block and never allocate.
type Queue struct {
	buf  [QueueSize]Request
	head atomic.Uint64 // Next slot to pop; written by the consumer
	tail atomic.Uint64 // Next slot to push; written by the producer
}

// Push appends r. It returns false when the queue is full.
func (q *Queue) Push(r Request) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == QueueSize {
		return false
	}
	q.buf[tail%QueueSize] = r
	q.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest request.
func (q *Queue) Pop() (Request, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Request{}, false
	}
	r := q.buf[head%QueueSize]
	q.head.Store(head + 1)
	return r, true
}

// Len returns the number of queued requests.
func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}
