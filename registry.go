package wlsys

import (
	"fmt"
	"image"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/config"
	"deedles.dev/wlsys/input"
	"deedles.dev/wlsys/internal/debug"
)

// claim binds the global name into handle unless something has already
// been bound there.
func claim[T comparable](s *System, handle *T, name uint32, inter string, version uint32, bind func(name, version uint32) (T, error)) bool {
	var zero T
	if *handle != zero {
		return false
	}

	obj, err := bind(name, version)
	if err != nil {
		debug.ReportWL(fmt.Sprintf("wl_registry.bind(%v)", inter), err)
		return false
	}
	*handle = obj
	s.names[inter] = name
	return true
}

// release destroys the global bound for inter, if any.
func (s *System) release(inter string) {
	delete(s.names, inter)

	switch inter {
	case wl.CompositorInterface:
		if s.compositor != nil {
			s.compositor.Release()
			s.compositor = nil
		}

	case wl.ShellInterface:
		if s.shell != nil {
			s.shell.Release()
			s.shell = nil
		}

	case wl.XdgWmBaseInterface:
		if s.wmBase != nil {
			if err := s.wmBase.Destroy(); err != nil {
				debug.ReportWL("xdg_wm_base.destroy", err)
			}
			s.wmBase = nil
		}

	case wl.OutputInterface:
		if s.output != nil {
			if err := s.output.Release(); err != nil {
				debug.ReportWL("wl_output.release", err)
			}
			s.output = nil
			s.out = outputInfo{}
		}

	case wl.SeatInterface:
		if s.seat != nil {
			s.releaseKeyboard()
			s.releasePointer()
			if err := s.seat.Release(); err != nil {
				debug.ReportWL("wl_seat.release", err)
			}
			s.seat = nil
		}

	case wl.ShmInterface:
		if s.shm != nil {
			s.dropCursor()
			s.shm.Release()
			s.shm = nil
		}
	}
}

func (s *System) releaseKeyboard() {
	if s.keyboard == nil {
		return
	}

	if err := s.keyboard.Release(); err != nil {
		debug.ReportWL("wl_keyboard.release", err)
	}
	s.keyboard = nil

	if s.input != nil {
		s.input.Close()
		s.input = nil
	}
	if s.active != nil {
		s.push(Event{Kind: EventWindowDeactivate, Window: s.active})
		s.active = nil
	}
}

func (s *System) releasePointer() {
	if s.pointer == nil {
		return
	}

	if err := s.pointer.Release(); err != nil {
		debug.ReportWL("wl_pointer.release", err)
	}
	s.pointer = nil
	s.hover = nil
}

type displayListener System

func (s *displayListener) Error(objectID, code uint32, message string) {
	debug.Logger().Error("protocol error", "object", objectID, "code", code, "message", message)
}

type registryListener System

func (s *registryListener) Global(name uint32, inter string, version uint32) {
	sys := (*System)(s)
	r := s.registry

	switch inter {
	case wl.CompositorInterface:
		claim(sys, &s.compositor, name, inter, min(version, compositorVersion), r.BindCompositor)

	case wl.ShellInterface:
		if (s.cfg.Shell == config.ShellXdg) || ((s.cfg.Shell == config.ShellAuto) && (s.wmBase != nil)) {
			return
		}
		claim(sys, &s.shell, name, inter, min(version, shellVersion), r.BindShell)

	case wl.XdgWmBaseInterface:
		if s.cfg.Shell == config.ShellWlShell {
			return
		}
		if claim(sys, &s.wmBase, name, inter, min(version, xdgWmBaseVersion), r.BindXdgWmBase) {
			s.wmBase.Listener = (*xdgWmBaseListener)(s)

			// Existing wl_shell surfaces keep working without the
			// global.
			if s.cfg.Shell == config.ShellAuto {
				sys.release(wl.ShellInterface)
			}
		}

	case wl.OutputInterface:
		if claim(sys, &s.output, name, inter, min(version, outputVersion), r.BindOutput) {
			s.output.Listener = (*outputListener)(s)
		}

	case wl.SeatInterface:
		if claim(sys, &s.seat, name, inter, min(version, seatVersion), r.BindSeat) {
			s.seat.Listener = (*seatListener)(s)
		}

	case wl.ShmInterface:
		claim(sys, &s.shm, name, inter, min(version, shmVersion), r.BindShm)
	}
}

func (s *registryListener) GlobalRemove(name uint32) {
	for inter, n := range s.names {
		if n == name {
			(*System)(s).release(inter)
			return
		}
	}
}

type xdgWmBaseListener System

func (s *xdgWmBaseListener) Ping(serial uint32) {
	if s.wmBase == nil {
		return
	}
	if err := s.wmBase.Pong(serial); err != nil {
		debug.ReportWL("xdg_wm_base.pong", err)
	}
}

type outputListener System

func (s *outputListener) Geometry(x, y, physicalWidth, physicalHeight, subpixel int32, make, model string, transform int32) {
	s.out.physical = image.Pt(int(physicalWidth), int(physicalHeight))
}

func (s *outputListener) Mode(flags wl.OutputMode, width, height, refresh int32) {
	if !flags.Has(wl.OutputModeCurrent) {
		return
	}
	s.out.size = image.Pt(int(width), int(height))
	s.out.refresh = refresh
}

func (s *outputListener) Done() {}

func (s *outputListener) Scale(factor int32) {
	s.out.scale = factor
}

type seatListener System

func (s *seatListener) Capabilities(caps wl.SeatCapability) {
	sys := (*System)(s)

	switch {
	case caps.Has(wl.SeatCapabilityKeyboard) && (s.keyboard == nil):
		kb, err := s.seat.GetKeyboard()
		if err != nil {
			debug.ReportWL("wl_seat.get_keyboard", err)
			break
		}
		s.keyboard = kb
		s.keyboard.Listener = (*keyboardListener)(s)
		s.input = input.NewKeyboard(s.compiler)

	case !caps.Has(wl.SeatCapabilityKeyboard):
		sys.releaseKeyboard()
	}

	switch {
	case caps.Has(wl.SeatCapabilityPointer) && (s.pointer == nil):
		p, err := s.seat.GetPointer()
		if err != nil {
			debug.ReportWL("wl_seat.get_pointer", err)
			break
		}
		s.pointer = p
		s.pointer.Listener = (*pointerListener)(s)

	case !caps.Has(wl.SeatCapabilityPointer):
		sys.releasePointer()
	}
}

func (s *seatListener) Name(name string) {
	debug.Logger().Debug("seat", "name", name)
}
