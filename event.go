package wlsys

import (
	"fmt"
	"image"

	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/pointer"
)

// EventKind identifies the type of an Event.
type EventKind int

const (
	EventWindowSize EventKind = iota + 1
	EventWindowUpdate
	EventWindowActivate
	EventWindowDeactivate
	EventWindowClose
	EventKeyDown
	EventKeyUp
	EventCursorMove
	EventButtonDown
	EventButtonUp
	EventWheel
)

var eventKindNames = [...]string{
	EventWindowSize:       "WindowSize",
	EventWindowUpdate:     "WindowUpdate",
	EventWindowActivate:   "WindowActivate",
	EventWindowDeactivate: "WindowDeactivate",
	EventWindowClose:      "WindowClose",
	EventKeyDown:          "KeyDown",
	EventKeyUp:            "KeyUp",
	EventCursorMove:       "CursorMove",
	EventButtonDown:       "ButtonDown",
	EventButtonUp:         "ButtonUp",
	EventWheel:            "Wheel",
}

func (k EventKind) String() string {
	if (k > 0) && (int(k) < len(eventKindNames)) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a single occurrence pushed to the EventQueue. Only the
// fields relevant to Kind are set.
type Event struct {
	// Time is the clock time, in milliseconds, when the event was
	// created.
	Time   uint64
	Kind   EventKind
	Window *Window

	// Key events.
	Key       key.Code
	Modifiers key.Modifiers
	Text      string

	// Cursor and button events. Position is in surface-local
	// coordinates.
	Position image.Point
	Button   pointer.Button

	// Wheel is positive when scrolling up.
	Wheel int32
}

func (ev Event) String() string {
	switch ev.Kind {
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%v(%v, %q)", ev.Kind, ev.Key, ev.Text)
	case EventCursorMove:
		return fmt.Sprintf("%v(%v)", ev.Kind, ev.Position)
	case EventButtonDown, EventButtonUp:
		return fmt.Sprintf("%v(%v)", ev.Kind, ev.Button)
	case EventWheel:
		return fmt.Sprintf("%v(%v)", ev.Kind, ev.Wheel)
	default:
		return ev.Kind.String()
	}
}

func (s *System) push(ev Event) {
	if s.events == nil {
		return
	}
	ev.Time = s.clock.Milliseconds()
	s.events.PushEvent(ev)
}
