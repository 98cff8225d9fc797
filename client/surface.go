package wl

import "deedles.dev/wlsys/wire"

var surfaceDescriptor = descriptor{
	name:    "wl_surface",
	version: 4,
	events:  []string{"enter", "leave"},
}

type SurfaceListener interface {
	Enter(output *Output)
	Leave(output *Output)
}

type Surface struct {
	proxy
	Listener SurfaceListener

	// UserData is not used by this package. It lets the owner of a
	// surface find its own state from a surface that arrives as an
	// event argument.
	UserData any
}

func (surface *Surface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0, 1:
		id := msg.ReadObject()
		if err := msg.Err(); err != nil {
			return err
		}

		if surface.dead || (surface.Listener == nil) {
			return nil
		}
		output, _ := surface.client.Get(id).(*Output)
		if msg.Op() == 0 {
			surface.Listener.Enter(output)
			return nil
		}
		surface.Listener.Leave(output)
		return nil

	default:
		return surface.unknownOp(msg.Op())
	}
}

func (surface *Surface) Destroy() error {
	return surface.destroy("destroy", 0)
}

// Attach sets buffer as the surface's pending content. A nil buffer
// unmaps the surface on the next commit.
func (surface *Surface) Attach(buffer *Buffer, x, y int32) error {
	return surface.send("attach", 1, ref(buffer), x, y)
}

func (surface *Surface) Damage(x, y, width, height int32) error {
	return surface.send("damage", 2, x, y, width, height)
}

// Frame requests a callback for when it is a good time to draw the
// next frame. It takes effect on the next commit.
func (surface *Surface) Frame() (*Callback, error) {
	var cb Callback
	surface.client.track(&cb, &cb.proxy, &callbackDescriptor, 1)
	err := surface.send("frame", 3, object(cb.id))
	if err != nil {
		cb.forget()
		return nil, err
	}
	return &cb, nil
}

func (surface *Surface) Commit() error {
	return surface.send("commit", 6)
}
