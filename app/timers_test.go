package app_test

import (
	"testing"

	"deedles.dev/wlsys/app"
	"github.com/stretchr/testify/assert"
)

type fakeClock uint64

func (c *fakeClock) Milliseconds() uint64 {
	return uint64(*c)
}

func TestTimersOrder(t *testing.T) {
	var clock fakeClock
	timers := app.NewTimers(&clock)

	var fired []string
	record := func(name string) func(*app.Timer, uint64) {
		return func(*app.Timer, uint64) { fired = append(fired, name) }
	}
	timers.Add(30, 0, record("c"))
	timers.Add(10, 0, record("a"))
	timers.Add(20, 0, record("b"))

	next, ok := timers.NextFireTime()
	assert.True(t, ok)
	assert.Equal(t, uint64(10), next)

	assert.False(t, timers.FireTimers(5))
	assert.True(t, timers.FireTimers(20))
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, timers.Len())

	assert.True(t, timers.FireTimers(100))
	assert.Equal(t, []string{"a", "b", "c"}, fired)

	_, ok = timers.NextFireTime()
	assert.False(t, ok)
}

func TestTimersRepeat(t *testing.T) {
	clock := fakeClock(100)
	timers := app.NewTimers(&clock)

	var at []uint64
	timer := timers.Add(10, 10, func(_ *app.Timer, now uint64) { at = append(at, now) })
	assert.Equal(t, uint64(110), timer.Deadline())

	timers.FireTimers(110)
	assert.Equal(t, uint64(120), timer.Deadline())

	// Missed intervals are skipped.
	timers.FireTimers(155)
	assert.Equal(t, uint64(165), timer.Deadline())
	assert.Equal(t, []uint64{110, 155}, at)

	assert.True(t, timers.Remove(timer))
	assert.False(t, timer.Scheduled())
	assert.False(t, timers.Remove(timer))
	assert.False(t, timers.FireTimers(1000))
}

func TestTimersRemoveFromCallback(t *testing.T) {
	var clock fakeClock
	timers := app.NewTimers(&clock)

	var n int
	timers.Add(1, 1, func(timer *app.Timer, now uint64) {
		n++
		timers.Remove(timer)
	})
	other := timers.Add(50, 0, func(*app.Timer, uint64) {})

	timers.FireTimers(1)
	timers.FireTimers(2)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, timers.Len())
	assert.True(t, other.Scheduled())
}
