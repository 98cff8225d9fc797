package wl

import "deedles.dev/wlsys/wire"

var xdgWmBaseDescriptor = descriptor{
	name:    XdgWmBaseInterface,
	version: 2,
	events:  []string{"ping"},
}

var xdgSurfaceDescriptor = descriptor{
	name:    "xdg_surface",
	version: 2,
	events:  []string{"configure"},
}

var xdgToplevelDescriptor = descriptor{
	name:    "xdg_toplevel",
	version: 2,
	events:  []string{"configure", "close", "configure_bounds", "wm_capabilities"},
}

// XdgToplevelState is one of the states listed in an xdg_toplevel
// configure event.
type XdgToplevelState uint32

const (
	XdgToplevelStateMaximized XdgToplevelState = 1 + iota
	XdgToplevelStateFullscreen
	XdgToplevelStateResizing
	XdgToplevelStateActivated
)

type XdgWmBaseListener interface {
	Ping(serial uint32)
}

// XdgWmBase is the xdg_wm_base global of the xdg-shell protocol.
type XdgWmBase struct {
	proxy
	Listener XdgWmBaseListener
}

func (wm *XdgWmBase) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if !wm.dead && (wm.Listener != nil) {
			wm.Listener.Ping(serial)
		}
		return nil

	default:
		return wm.unknownOp(msg.Op())
	}
}

func (wm *XdgWmBase) Destroy() error {
	return wm.destroy("destroy", 0)
}

func (wm *XdgWmBase) GetXdgSurface(surface *Surface) (*XdgSurface, error) {
	var xs XdgSurface
	wm.client.track(&xs, &xs.proxy, &xdgSurfaceDescriptor, wm.version)
	err := wm.send("get_xdg_surface", 2, object(xs.id), ref(surface))
	if err != nil {
		xs.forget()
		return nil, err
	}
	return &xs, nil
}

func (wm *XdgWmBase) Pong(serial uint32) error {
	return wm.send("pong", 3, serial)
}

type XdgSurfaceListener interface {
	Configure(serial uint32)
}

type XdgSurface struct {
	proxy
	Listener XdgSurfaceListener
}

func (xs *XdgSurface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if !xs.dead && (xs.Listener != nil) {
			xs.Listener.Configure(serial)
		}
		return nil

	default:
		return xs.unknownOp(msg.Op())
	}
}

func (xs *XdgSurface) Destroy() error {
	return xs.destroy("destroy", 0)
}

func (xs *XdgSurface) GetToplevel() (*XdgToplevel, error) {
	var top XdgToplevel
	xs.client.track(&top, &top.proxy, &xdgToplevelDescriptor, xs.version)
	err := xs.send("get_toplevel", 1, object(top.id))
	if err != nil {
		top.forget()
		return nil, err
	}
	return &top, nil
}

func (xs *XdgSurface) SetWindowGeometry(x, y, width, height int32) error {
	return xs.send("set_window_geometry", 3, x, y, width, height)
}

func (xs *XdgSurface) AckConfigure(serial uint32) error {
	return xs.send("ack_configure", 4, serial)
}

type XdgToplevelListener interface {
	Configure(width, height int32, states []XdgToplevelState)
	Close()
}

type XdgToplevel struct {
	proxy
	Listener XdgToplevelListener
}

func (top *XdgToplevel) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		width := msg.ReadInt()
		height := msg.ReadInt()
		raw := msg.ReadUintArray()
		if err := msg.Err(); err != nil {
			return err
		}
		if top.dead || (top.Listener == nil) {
			return nil
		}

		states := make([]XdgToplevelState, 0, len(raw))
		for _, s := range raw {
			states = append(states, XdgToplevelState(s))
		}
		top.Listener.Configure(width, height, states)
		return nil

	case 1:
		if !top.dead && (top.Listener != nil) {
			top.Listener.Close()
		}
		return nil

	case 2:
		msg.ReadInt()
		msg.ReadInt()
		return msg.Err()

	case 3:
		msg.ReadArray()
		return msg.Err()

	default:
		return top.unknownOp(msg.Op())
	}
}

func (top *XdgToplevel) Destroy() error {
	return top.destroy("destroy", 0)
}

func (top *XdgToplevel) SetTitle(title string) error {
	return top.send("set_title", 2, title)
}

func (top *XdgToplevel) SetAppID(id string) error {
	return top.send("set_app_id", 3, id)
}

func (top *XdgToplevel) SetMaximized() error {
	return top.send("set_maximized", 9)
}

func (top *XdgToplevel) UnsetMaximized() error {
	return top.send("unset_maximized", 10)
}

// SetFullscreen asks for the surface to cover output. A nil output
// lets the compositor choose.
func (top *XdgToplevel) SetFullscreen(output *Output) error {
	return top.send("set_fullscreen", 11, ref(output))
}

func (top *XdgToplevel) UnsetFullscreen() error {
	return top.send("unset_fullscreen", 12)
}

func (top *XdgToplevel) SetMinimized() error {
	return top.send("set_minimized", 13)
}
