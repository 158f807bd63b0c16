package midi

import (
	"sync/atomic"
)

// Queue is a fixed-capacity single-producer single-consumer ring of events.
//
// A MIDI input goroutine pushes, the audio callback drains. Neither side blocks or
// allocates; when the ring is full new events are dropped and counted.
type Queue struct {
	buf     []Event
	mask    uint64
	head    atomic.Uint64 // next slot to read, owned by the consumer
	tail    atomic.Uint64 // next slot to write, owned by the producer
	dropped atomic.Uint64
}

// NewQueue creates a queue holding at least capacity events.
func NewQueue(capacity int) *Queue {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Queue{
		buf:  make([]Event, size),
		mask: uint64(size - 1),
	}
}

// Push enqueues an event. It returns false if the queue is full.
func (q *Queue) Push(e Event) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		q.dropped.Add(1)
		return false
	}
	q.buf[tail&q.mask] = e
	q.tail.Store(tail + 1)
	return true
}

// Pop dequeues the oldest event.
func (q *Queue) Pop() (Event, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Event{}, false
	}
	e := q.buf[head&q.mask]
	q.head.Store(head + 1)
	return e, true
}

// Drain appends queued events to dst without growing it past cap(dst).
func (q *Queue) Drain(dst []Event) []Event {
	for len(dst) < cap(dst) {
		e, ok := q.Pop()
		if !ok {
			break
		}
		dst = append(dst, e)
	}
	return dst
}

func (q *Queue) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

func (q *Queue) Cap() int {
	return len(q.buf)
}

// Dropped returns the number of events rejected because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
