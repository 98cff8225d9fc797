package app

import (
	"container/heap"
	"time"

	"deedles.dev/wlsys"
)

// Clock counts milliseconds from its creation.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

func (c *Clock) Milliseconds() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}

// Timer is a callback scheduled on Timers.
type Timer struct {
	deadline uint64
	interval uint64
	fn       func(t *Timer, now uint64)

	// index is the position in the heap, or -1 when unscheduled.
	index int
}

// Deadline returns the time at which the timer next fires.
func (t *Timer) Deadline() uint64 {
	return t.deadline
}

// Scheduled reports whether the timer will fire again.
func (t *Timer) Scheduled() bool {
	return t.index >= 0
}

type timerHeap []*Timer

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].deadline < h[j].deadline }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(v any) {
	t := v.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	t := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	t.index = -1
	return t
}

// Timers is a TimerManager that keeps its timers in a heap ordered by
// deadline. It is not safe for concurrent use.
type Timers struct {
	clock  wlsys.Clock
	timers timerHeap
}

func NewTimers(clock wlsys.Clock) *Timers {
	return &Timers{clock: clock}
}

// Add schedules fn to be called delay milliseconds from now. If
// interval is not zero, it is then called again every interval
// milliseconds until the timer is removed.
func (ts *Timers) Add(delay, interval uint64, fn func(t *Timer, now uint64)) *Timer {
	t := Timer{
		deadline: ts.clock.Milliseconds() + delay,
		interval: interval,
		fn:       fn,
	}
	heap.Push(&ts.timers, &t)
	return &t
}

// Remove unschedules t. It reports whether t was scheduled.
func (ts *Timers) Remove(t *Timer) bool {
	if (t.index < 0) || (t.index >= len(ts.timers)) || (ts.timers[t.index] != t) {
		return false
	}
	heap.Remove(&ts.timers, t.index)
	return true
}

// Len returns the number of scheduled timers.
func (ts *Timers) Len() int {
	return len(ts.timers)
}

func (ts *Timers) NextFireTime() (uint64, bool) {
	if len(ts.timers) == 0 {
		return 0, false
	}
	return ts.timers[0].deadline, true
}

// FireTimers calls every timer that is due at now. Repeating timers
// that have missed more than one interval fire only once.
func (ts *Timers) FireTimers(now uint64) bool {
	var due []*Timer
	for (len(ts.timers) > 0) && (ts.timers[0].deadline <= now) {
		t := heap.Pop(&ts.timers).(*Timer)
		if t.interval > 0 {
			t.deadline += t.interval
			if t.deadline <= now {
				t.deadline = now + t.interval
			}
			heap.Push(&ts.timers, t)
		}
		due = append(due, t)
	}

	for _, t := range due {
		t.fn(t, now)
	}
	return len(due) > 0
}
