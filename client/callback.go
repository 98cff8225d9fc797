package wl

import "deedles.dev/wlsys/wire"

var callbackDescriptor = descriptor{
	name:    "wl_callback",
	version: 1,
	events:  []string{"done"},
}

type CallbackListener interface {
	Done(data uint32)
}

// CallbackFunc adapts a function to the CallbackListener interface.
type CallbackFunc func(data uint32)

func (f CallbackFunc) Done(data uint32) {
	f(data)
}

// Callback is a one-shot wl_callback. The server destroys it after
// sending done.
type Callback struct {
	proxy
	Listener CallbackListener
}

func (cb *Callback) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		data := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		if cb.dead {
			return nil
		}
		cb.dead = true
		if cb.Listener != nil {
			cb.Listener.Done(data)
		}
		return nil

	default:
		return cb.unknownOp(msg.Op())
	}
}

// Cancel stops the listener from being called. The server still sends
// the event, but it is ignored.
func (cb *Callback) Cancel() {
	cb.Listener = nil
}
