package chroma

import "sync"

// EventQueue collects the events of the current tick.
//
// Push and PushBatch are safe for any number of concurrent producers. Drain is
// meant for a single consumer once every producer has returned.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
	spare  []Event
}

// NewEventQueue returns an empty queue with room for capacity events.
func NewEventQueue(capacity int) *EventQueue {
	if capacity < 0 {
		capacity = 0
	}
	return &EventQueue{events: make([]Event, 0, capacity)}
}

// Push appends a single event.
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// PushBatch appends events contiguously, in order.
func (q *EventQueue) PushBatch(events []Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Drain removes and returns every pending event in FIFO order. The returned
// slice is only valid until the next Drain.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = q.spare[:0]
	q.spare = out
	return out
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
