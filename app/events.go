package app

import "deedles.dev/wlsys"

// Events is a first-in, first-out EventQueue.
type Events struct {
	events []wlsys.Event
	head   int
}

func (q *Events) PushEvent(ev wlsys.Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *Events) Len() int {
	return len(q.events) - q.head
}

// Pop removes and returns the oldest event.
func (q *Events) Pop() (wlsys.Event, bool) {
	if q.head >= len(q.events) {
		return wlsys.Event{}, false
	}

	ev := q.events[q.head]
	q.events[q.head] = wlsys.Event{}
	q.head++
	if q.head == len(q.events) {
		q.events = q.events[:0]
		q.head = 0
	}
	return ev, true
}
