package wl

import (
	"deedles.dev/wlsys/pointer"
	"deedles.dev/wlsys/wire"
)

var pointerDescriptor = descriptor{
	name:    "wl_pointer",
	version: 5,
	events: []string{
		"enter", "leave", "motion", "button", "axis",
		"frame", "axis_source", "axis_stop", "axis_discrete",
	},
}

type PointerButtonState uint32

const (
	PointerButtonStateReleased PointerButtonState = 0
	PointerButtonStatePressed  PointerButtonState = 1
)

type PointerAxis uint32

const (
	PointerAxisVerticalScroll   PointerAxis = 0
	PointerAxisHorizontalScroll PointerAxis = 1
)

// PointerListener receives the core wl_pointer events. The frame and
// axis detail events of later versions are decoded but not forwarded.
type PointerListener interface {
	Enter(serial uint32, surface *Surface, x, y wire.Fixed)
	Leave(serial uint32, surface *Surface)
	Motion(time uint32, x, y wire.Fixed)
	Button(serial, time uint32, button pointer.Button, state PointerButtonState)
	Axis(time uint32, axis PointerAxis, value wire.Fixed)
}

type Pointer struct {
	proxy
	Listener PointerListener
}

func (p *Pointer) listening() bool {
	return !p.dead && (p.Listener != nil)
}

func (p *Pointer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		serial := msg.ReadUint()
		surface := msg.ReadObject()
		x := msg.ReadFixed()
		y := msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.listening() {
			p.Listener.Enter(serial, p.client.surface(surface), x, y)
		}
		return nil

	case 1:
		serial := msg.ReadUint()
		surface := msg.ReadObject()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.listening() {
			p.Listener.Leave(serial, p.client.surface(surface))
		}
		return nil

	case 2:
		time := msg.ReadUint()
		x := msg.ReadFixed()
		y := msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.listening() {
			p.Listener.Motion(time, x, y)
		}
		return nil

	case 3:
		serial := msg.ReadUint()
		time := msg.ReadUint()
		button := msg.ReadUint()
		state := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.listening() {
			p.Listener.Button(serial, time, pointer.Button(button), PointerButtonState(state))
		}
		return nil

	case 4:
		time := msg.ReadUint()
		axis := msg.ReadUint()
		value := msg.ReadFixed()
		if err := msg.Err(); err != nil {
			return err
		}
		if p.listening() {
			p.Listener.Axis(time, PointerAxis(axis), value)
		}
		return nil

	case 5:
		return nil

	case 6:
		msg.ReadUint()
		return msg.Err()

	case 7:
		msg.ReadUint()
		msg.ReadUint()
		return msg.Err()

	case 8:
		msg.ReadUint()
		msg.ReadInt()
		return msg.Err()

	default:
		return p.unknownOp(msg.Op())
	}
}

// SetCursor sets the pointer image. A nil surface hides the cursor.
func (p *Pointer) SetCursor(serial uint32, surface *Surface, hotspotX, hotspotY int32) error {
	return p.send("set_cursor", 0, serial, ref(surface), hotspotX, hotspotY)
}

// Release destroys the pointer. Before version 3 there is no release
// request and the pointer is only forgotten locally.
func (p *Pointer) Release() error {
	if p.version < 3 {
		p.forget()
		return nil
	}
	return p.destroy("release", 1)
}
