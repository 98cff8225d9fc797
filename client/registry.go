package wl

import (
	"deedles.dev/wlsys/wire"
	"golang.org/x/exp/maps"
)

var registryDescriptor = descriptor{
	name:    "wl_registry",
	version: 1,
	events:  []string{"global", "global_remove"},
}

type RegistryListener interface {
	Global(name uint32, inter string, version uint32)
	GlobalRemove(name uint32)
}

type Registry struct {
	proxy
	Listener RegistryListener

	globals map[uint32]Interface
}

// Globals returns a snapshot of the globals currently announced by the
// server, keyed by name.
func (registry *Registry) Globals() map[uint32]Interface {
	return maps.Clone(registry.globals)
}

func (registry *Registry) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		name := msg.ReadUint()
		inter := msg.ReadString()
		version := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		registry.globals[name] = Interface{Name: inter, Version: version}
		if registry.Listener != nil {
			registry.Listener.Global(name, inter, version)
		}
		return nil

	case 1:
		name := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		delete(registry.globals, name)
		if registry.Listener != nil {
			registry.Listener.GlobalRemove(name)
		}
		return nil

	default:
		return registry.unknownOp(msg.Op())
	}
}

func (registry *Registry) bind(name, version uint32, obj wire.Object, p *proxy, desc *descriptor) error {
	registry.client.track(obj, p, desc, version)
	err := registry.send("bind", 0, name, wire.NewID{
		Interface: desc.name,
		Version:   p.version,
		ID:        p.id,
	})
	if err != nil {
		p.forget()
	}
	return err
}

// BindCompositor binds the wl_compositor global with the given name.
// version is clamped to the highest version this package supports.
func (registry *Registry) BindCompositor(name, version uint32) (*Compositor, error) {
	var compositor Compositor
	err := registry.bind(name, version, &compositor, &compositor.proxy, &compositorDescriptor)
	if err != nil {
		return nil, err
	}
	return &compositor, nil
}

func (registry *Registry) BindShell(name, version uint32) (*Shell, error) {
	var shell Shell
	err := registry.bind(name, version, &shell, &shell.proxy, &shellDescriptor)
	if err != nil {
		return nil, err
	}
	return &shell, nil
}

func (registry *Registry) BindXdgWmBase(name, version uint32) (*XdgWmBase, error) {
	var wm XdgWmBase
	err := registry.bind(name, version, &wm, &wm.proxy, &xdgWmBaseDescriptor)
	if err != nil {
		return nil, err
	}
	return &wm, nil
}

func (registry *Registry) BindOutput(name, version uint32) (*Output, error) {
	var output Output
	err := registry.bind(name, version, &output, &output.proxy, &outputDescriptor)
	if err != nil {
		return nil, err
	}
	return &output, nil
}

func (registry *Registry) BindSeat(name, version uint32) (*Seat, error) {
	var seat Seat
	err := registry.bind(name, version, &seat, &seat.proxy, &seatDescriptor)
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (registry *Registry) BindShm(name, version uint32) (*Shm, error) {
	var shm Shm
	err := registry.bind(name, version, &shm, &shm.proxy, &shmDescriptor)
	if err != nil {
		return nil, err
	}
	return &shm, nil
}
