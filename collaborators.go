package wlsys

import "time"

// WindowManager keeps track of the windows of an application.
type WindowManager interface {
	// AddWindow registers a newly created window.
	AddWindow(w *Window) error
}

// TimerManager schedules application timers. Times are in
// milliseconds as returned by the Clock.
type TimerManager interface {
	// NextFireTime returns the deadline of the earliest pending timer.
	// ok is false if there are none.
	NextFireTime() (deadline uint64, ok bool)

	// FireTimers runs every timer whose deadline is at or before now.
	// It reports whether any ran.
	FireTimers(now uint64) bool
}

// EventQueue receives the events generated by the System.
type EventQueue interface {
	PushEvent(ev Event)
}

// Clock is a millisecond time source.
type Clock interface {
	Milliseconds() uint64
}

// monotonic is the default Clock, counting from its creation.
type monotonic struct {
	start time.Time
}

func (c monotonic) Milliseconds() uint64 {
	return uint64(time.Since(c.start).Milliseconds())
}
