package wl

import "deedles.dev/wlsys/wire"

const (
	CompositorInterface = "wl_compositor"
	ShellInterface      = "wl_shell"
	XdgWmBaseInterface  = "xdg_wm_base"
	OutputInterface     = "wl_output"
	SeatInterface       = "wl_seat"
	ShmInterface        = "wl_shm"
)

var compositorDescriptor = descriptor{
	name:    CompositorInterface,
	version: 4,
}

type Compositor struct {
	proxy
}

func (compositor *Compositor) Dispatch(msg *wire.MessageBuffer) error {
	return compositor.unknownOp(msg.Op())
}

// CreateSurface creates a new wl_surface.
func (compositor *Compositor) CreateSurface() (*Surface, error) {
	var surface Surface
	compositor.client.track(&surface, &surface.proxy, &surfaceDescriptor, compositor.version)
	err := compositor.send("create_surface", 0, object(surface.id))
	if err != nil {
		surface.forget()
		return nil, err
	}
	return &surface, nil
}

// Release forgets the compositor. wl_compositor has no destructor.
func (compositor *Compositor) Release() {
	compositor.forget()
}
