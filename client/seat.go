package wl

import "deedles.dev/wlsys/wire"

var seatDescriptor = descriptor{
	name:    SeatInterface,
	version: 5,
	events:  []string{"capabilities", "name"},
}

type SeatCapability uint32

const (
	SeatCapabilityPointer  SeatCapability = 1
	SeatCapabilityKeyboard SeatCapability = 2
	SeatCapabilityTouch    SeatCapability = 4
)

func (c SeatCapability) Has(cap SeatCapability) bool {
	return c&cap != 0
}

type SeatListener interface {
	Capabilities(caps SeatCapability)
	Name(name string)
}

type Seat struct {
	proxy
	Listener SeatListener
}

func (seat *Seat) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		caps := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if !seat.dead && (seat.Listener != nil) {
			seat.Listener.Capabilities(SeatCapability(caps))
		}
		return nil

	case 1:
		name := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}
		if !seat.dead && (seat.Listener != nil) {
			seat.Listener.Name(name)
		}
		return nil

	default:
		return seat.unknownOp(msg.Op())
	}
}

func (seat *Seat) GetPointer() (*Pointer, error) {
	var p Pointer
	seat.client.track(&p, &p.proxy, &pointerDescriptor, seat.version)
	err := seat.send("get_pointer", 0, object(p.id))
	if err != nil {
		p.forget()
		return nil, err
	}
	return &p, nil
}

func (seat *Seat) GetKeyboard() (*Keyboard, error) {
	var kb Keyboard
	seat.client.track(&kb, &kb.proxy, &keyboardDescriptor, seat.version)
	err := seat.send("get_keyboard", 1, object(kb.id))
	if err != nil {
		kb.forget()
		return nil, err
	}
	return &kb, nil
}

// Release destroys the seat. Before version 5 there is no release
// request and the seat is only forgotten locally.
func (seat *Seat) Release() error {
	if seat.version < 5 {
		seat.forget()
		return nil
	}
	return seat.destroy("release", 3)
}
