package wl

import "deedles.dev/wlsys/wire"

var shellDescriptor = descriptor{
	name:    ShellInterface,
	version: 1,
}

var shellSurfaceDescriptor = descriptor{
	name:    "wl_shell_surface",
	version: 1,
	events:  []string{"ping", "configure", "popup_done"},
}

// ShellSurfaceResize is the edge bitmask sent with a configure event.
type ShellSurfaceResize uint32

const (
	ShellSurfaceResizeNone   ShellSurfaceResize = 0
	ShellSurfaceResizeTop    ShellSurfaceResize = 1
	ShellSurfaceResizeBottom ShellSurfaceResize = 2
	ShellSurfaceResizeLeft   ShellSurfaceResize = 4
	ShellSurfaceResizeRight  ShellSurfaceResize = 8
)

const ShellSurfaceFullscreenMethodDefault uint32 = 0

// Shell is the legacy wl_shell global.
type Shell struct {
	proxy
}

func (shell *Shell) Dispatch(msg *wire.MessageBuffer) error {
	return shell.unknownOp(msg.Op())
}

func (shell *Shell) GetShellSurface(surface *Surface) (*ShellSurface, error) {
	var ss ShellSurface
	shell.client.track(&ss, &ss.proxy, &shellSurfaceDescriptor, shell.version)
	err := shell.send("get_shell_surface", 0, object(ss.id), ref(surface))
	if err != nil {
		ss.forget()
		return nil, err
	}
	return &ss, nil
}

// Release forgets the shell. wl_shell has no destructor.
func (shell *Shell) Release() {
	shell.forget()
}

type ShellSurfaceListener interface {
	Ping(serial uint32)
	Configure(edges ShellSurfaceResize, width, height int32)
	PopupDone()
}

type ShellSurface struct {
	proxy
	Listener ShellSurfaceListener
}

func (ss *ShellSurface) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		serial := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if !ss.dead && (ss.Listener != nil) {
			ss.Listener.Ping(serial)
		}
		return nil

	case 1:
		edges := msg.ReadUint()
		width := msg.ReadInt()
		height := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if !ss.dead && (ss.Listener != nil) {
			ss.Listener.Configure(ShellSurfaceResize(edges), width, height)
		}
		return nil

	case 2:
		if !ss.dead && (ss.Listener != nil) {
			ss.Listener.PopupDone()
		}
		return nil

	default:
		return ss.unknownOp(msg.Op())
	}
}

func (ss *ShellSurface) Pong(serial uint32) error {
	return ss.send("pong", 0, serial)
}

func (ss *ShellSurface) SetToplevel() error {
	return ss.send("set_toplevel", 3)
}

// SetFullscreen asks for the surface to cover output. A nil output
// lets the compositor choose.
func (ss *ShellSurface) SetFullscreen(method, framerate uint32, output *Output) error {
	return ss.send("set_fullscreen", 5, method, framerate, ref(output))
}

func (ss *ShellSurface) SetMaximized(output *Output) error {
	return ss.send("set_maximized", 7, ref(output))
}

func (ss *ShellSurface) SetTitle(title string) error {
	return ss.send("set_title", 8, title)
}

func (ss *ShellSurface) SetClass(class string) error {
	return ss.send("set_class", 9, class)
}

// Destroy forgets the shell surface. wl_shell_surface has no
// destructor; it is destroyed along with its wl_surface.
func (ss *ShellSurface) Destroy() {
	ss.forget()
}
