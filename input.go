package wlsys

import (
	"errors"
	"image"
	"os"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/input"
	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/pointer"
	"deedles.dev/wlsys/wire"
)

// windowOf returns the window that owns surface, if any.
func windowOf(surface *wl.Surface) *Window {
	if surface == nil {
		return nil
	}
	w, ok := surface.UserData.(*Window)
	if !ok || !w.Valid() {
		return nil
	}
	return w
}

type keyboardListener System

func (s *keyboardListener) Keymap(format wl.KeyboardKeymapFormat, file *os.File, size uint32) {
	if s.input == nil {
		file.Close()
		return
	}

	err := s.input.Keymap(format, file, size)
	if err != nil {
		debug.Logger().Warn("keymap ignored", "format", format, "size", size, "err", err)
	}
}

func (s *keyboardListener) Enter(serial uint32, surface *wl.Surface, keys []byte) {
	w := windowOf(surface)
	if w == nil {
		return
	}

	s.active = w
	(*System)(s).push(Event{Kind: EventWindowActivate, Window: w})
}

func (s *keyboardListener) Leave(serial uint32, surface *wl.Surface) {
	if s.active == nil {
		return
	}

	w := s.active
	s.active = nil
	(*System)(s).push(Event{Kind: EventWindowDeactivate, Window: w})
}

func (s *keyboardListener) Key(serial, time, scancode uint32, state wl.KeyboardKeyState) {
	if s.input == nil {
		return
	}

	k, err := s.input.Key(scancode)
	if err != nil {
		if !errors.Is(err, input.ErrNoKeymap) {
			debug.Logger().Warn("key", "scancode", scancode, "err", err)
		}
		return
	}

	ev := Event{
		Kind:      EventKeyUp,
		Window:    s.active,
		Key:       k.Code,
		Modifiers: s.input.ModifierKeys(),
	}
	if state == wl.KeyboardKeyStatePressed {
		ev.Kind = EventKeyDown
		ev.Text = k.Text
	}
	(*System)(s).push(ev)
}

func (s *keyboardListener) Modifiers(serial, depressed, latched, locked, group uint32) {
	if s.input == nil {
		return
	}
	s.input.Modifiers(depressed, latched, locked, group)
}

func (s *keyboardListener) RepeatInfo(rate, delay int32) {
	if s.input == nil {
		return
	}
	s.input.SetRepeatInfo(rate, delay)
}

type pointerListener System

func fixedPoint(x, y wire.Fixed) image.Point {
	return image.Pt(x.Int(), y.Int())
}

func (s *pointerListener) Enter(serial uint32, surface *wl.Surface, x, y wire.Fixed) {
	w := windowOf(surface)
	if w == nil {
		return
	}

	s.hover = w
	s.enter = serial
	(*System)(s).applyCursor()
	(*System)(s).push(Event{Kind: EventCursorMove, Window: w, Position: fixedPoint(x, y)})
}

func (s *pointerListener) Leave(serial uint32, surface *wl.Surface) {
	s.hover = nil
}

func (s *pointerListener) Motion(time uint32, x, y wire.Fixed) {
	if s.hover == nil {
		return
	}
	(*System)(s).push(Event{Kind: EventCursorMove, Window: s.hover, Position: fixedPoint(x, y)})
}

func (s *pointerListener) Button(serial, time uint32, button pointer.Button, state wl.PointerButtonState) {
	if s.hover == nil {
		return
	}

	kind := EventButtonUp
	if state == wl.PointerButtonStatePressed {
		kind = EventButtonDown
	}
	(*System)(s).push(Event{Kind: kind, Window: s.hover, Button: button})
}

func (s *pointerListener) Axis(time uint32, axis wl.PointerAxis, value wire.Fixed) {
	if (s.hover == nil) || (axis != wl.PointerAxisVerticalScroll) {
		return
	}

	var wheel int32
	switch {
	case value < 0:
		wheel = 1
	case value > 0:
		wheel = -1
	default:
		return
	}
	(*System)(s).push(Event{Kind: EventWheel, Window: s.hover, Wheel: wheel})
}
