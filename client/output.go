package wl

import "deedles.dev/wlsys/wire"

var outputDescriptor = descriptor{
	name:    OutputInterface,
	version: 3,
	events:  []string{"geometry", "mode", "done", "scale", "name", "description"},
}

type OutputMode uint32

const (
	OutputModeCurrent   OutputMode = 0x1
	OutputModePreferred OutputMode = 0x2
)

func (m OutputMode) Has(flag OutputMode) bool {
	return m&flag != 0
}

type OutputListener interface {
	Geometry(x, y, physicalWidth, physicalHeight, subpixel int32, make, model string, transform int32)
	Mode(flags OutputMode, width, height, refresh int32)
	Done()
	Scale(factor int32)
}

type Output struct {
	proxy
	Listener OutputListener
}

func (out *Output) listening() bool {
	return !out.dead && (out.Listener != nil)
}

func (out *Output) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		x := msg.ReadInt()
		y := msg.ReadInt()
		physicalWidth := msg.ReadInt()
		physicalHeight := msg.ReadInt()
		subpixel := msg.ReadInt()
		make := msg.ReadString()
		model := msg.ReadString()
		transform := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.listening() {
			out.Listener.Geometry(x, y, physicalWidth, physicalHeight, subpixel, make, model, transform)
		}
		return nil

	case 1:
		flags := msg.ReadUint()
		width := msg.ReadInt()
		height := msg.ReadInt()
		refresh := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.listening() {
			out.Listener.Mode(OutputMode(flags), width, height, refresh)
		}
		return nil

	case 2:
		if out.listening() {
			out.Listener.Done()
		}
		return nil

	case 3:
		factor := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if out.listening() {
			out.Listener.Scale(factor)
		}
		return nil

	case 4, 5:
		msg.ReadString()
		return msg.Err()

	default:
		return out.unknownOp(msg.Op())
	}
}

// Release destroys the output. Before version 3 there is no release
// request and the output is only forgotten locally.
func (out *Output) Release() error {
	if out.version < 3 {
		out.forget()
		return nil
	}
	return out.destroy("release", 0)
}
