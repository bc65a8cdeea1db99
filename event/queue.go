package event

import (
	"sync/atomic"

	"github.com/lixenwraith/fly-catcher/parameter"
)

// EventQueue is a bounded ring of simulation events, drained once per tick
// Push is safe from any goroutine (hand tracking, audio callbacks); Drain belongs to the tick
// A slot's published flag is set only after its event is written, so the consumer never reads a half-written slot
// When the ring is full the oldest unread events are overwritten and counted
type EventQueue struct {
	slots     [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool

	head atomic.Uint64 // next slot to read
	tail atomic.Uint64 // next slot to claim

	overwritten atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push claims the next slot and publishes the event into it
func (q *EventQueue) Push(ev GameEvent) {
	var slot uint64
	for {
		slot = q.tail.Load()
		if q.tail.CompareAndSwap(slot, slot+1) {
			break
		}
	}

	idx := slot & parameter.EventBufferMask
	q.slots[idx] = ev
	q.published[idx].Store(true)

	// Drop the oldest unread event when the claimed slot laps the reader
	floor := slot + 1 - min(slot+1, parameter.EventQueueSize)
	for {
		head := q.head.Load()
		if head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			q.overwritten.Add(floor - head)
			return
		}
	}
}

// Drain appends every published event in FIFO order to dst and advances the reader
// Reuse dst across ticks to keep dispatch allocation-free
func (q *EventQueue) Drain(dst []GameEvent) []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return dst
		}

		start := len(dst)
		n := min(tail-head, parameter.EventQueueSize)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break // producer still writing
			}
			dst = append(dst, q.slots[idx])
			q.published[idx].Store(false)
		}

		read := uint64(len(dst) - start)
		if q.head.CompareAndSwap(head, head+read) {
			return dst
		}
		// A producer moved head past us while we read; retry from the new head
		dst = dst[:start]
	}
}

// Consume returns all pending events in FIFO order, nil when empty
func (q *EventQueue) Consume() []GameEvent {
	events := q.Drain(nil)
	if len(events) == 0 {
		return nil
	}
	return events
}

// Len returns the approximate pending event count
func (q *EventQueue) Len() int {
	head, tail := q.head.Load(), q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Overwritten is the total number of events lost to overflow
func (q *EventQueue) Overwritten() uint64 {
	return q.overwritten.Load()
}
