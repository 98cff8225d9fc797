package wlsys

import (
	"errors"
	"math"

	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/wire"
	"golang.org/x/sys/unix"
)

// ProcessEvents dispatches events from the compositor and fires due
// timers. If wait is true it blocks until at least one event has been
// dispatched or one timer has fired, waking up in time for the next
// timer. If wait is false it never blocks. It reports whether anything
// was processed. A failed poll of the socket ends the call early
// instead of retrying.
func (s *System) ProcessEvents(wait bool) bool {
	var processed bool
	for {
		if s.err == nil {
			ok, err := s.pumpSocket(wait)
			processed = ok || processed
			if err != nil {
				debug.Logger().Error("poll", "err", err)
				return processed
			}
		}

		if (s.timers != nil) && s.timers.FireTimers(s.clock.Milliseconds()) {
			processed = true
		}

		if !wait || processed || (s.err != nil) {
			return processed
		}
	}
}

// pumpSocket performs the socket half of one pass of ProcessEvents.
// Connection errors are recorded with fail. The returned error is only
// set if polling itself failed.
func (s *System) pumpSocket(wait bool) (bool, error) {
	if s.dispatch() {
		return true, nil
	}

	events := int16(unix.POLLIN)
	if err := s.client.Flush(); err != nil {
		if !errors.Is(err, wire.ErrWouldBlock) {
			s.fail(err)
			return false, nil
		}
		events |= unix.POLLOUT
	}

	revents, err := s.poll(events, s.timeout(wait))
	if err != nil {
		return false, err
	}

	switch {
	case revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0:
		_, err := s.client.ReadEvents()
		if err != nil {
			s.fail(err)
			return false, nil
		}
		return s.dispatch(), nil

	case revents&unix.POLLOUT != 0:
		s.flush()
	}

	return false, nil
}

// timeout returns how long, in milliseconds, to wait on the socket.
func (s *System) timeout(wait bool) int {
	if !wait {
		return 0
	}
	if s.timers == nil {
		return -1
	}

	next, ok := s.timers.NextFireTime()
	if !ok {
		return -1
	}

	now := s.clock.Milliseconds()
	if next <= now {
		return 0
	}
	return int(min(next-now, math.MaxInt32))
}

// dispatch dispatches everything that has already been read and sends
// any requests made by the handlers.
func (s *System) dispatch() bool {
	n, err := s.client.DispatchPending()
	if err != nil {
		s.fail(err)
	}
	if n > 0 {
		s.flush()
	}
	return n > 0
}

func (s *System) flush() {
	err := s.client.Flush()
	if (err != nil) && !errors.Is(err, wire.ErrWouldBlock) {
		s.fail(err)
	}
}
