// Package wlsys is a Wayland backend for an application framework. A
// System owns the connection to the compositor and creates Windows
// that render with OpenGL or into shared memory. Events from the
// compositor are translated and delivered to an EventQueue by
// ProcessEvents, which must be called repeatedly from one goroutine.
package wlsys

import (
	"errors"
	"fmt"
	"image"
	"time"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/config"
	"deedles.dev/wlsys/egl"
	"deedles.dev/wlsys/input"
	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/pointer"
	"deedles.dev/wlsys/wire"
	"deedles.dev/wlsys/xkb"
)

var (
	ErrNoCompositor       = errors.New("no compositor")
	ErrNoShell            = errors.New("no shell")
	ErrNoShm              = errors.New("no shm")
	ErrUnsupportedContext = errors.New("unsupported drawing context")
	ErrWindowClosed       = errors.New("window closed")
	ErrConnectionBroken   = errors.New("connection broken")
)

// Versions of the globals that are bound.
const (
	compositorVersion = 4
	shellVersion      = 1
	xdgWmBaseVersion  = 2
	outputVersion     = 3
	seatVersion       = 5
	shmVersion        = 1
)

// Options configures a System. Only Config may be left nil; the other
// collaborators are required for events and timers to work.
type Options struct {
	Config *config.Config

	// Conn, if not nil, is used instead of dialing the compositor.
	Conn *wire.Conn

	// Driver and Compiler default to the cgo implementations. If
	// those are unavailable, OpenGL windows can't be created and no
	// key events are generated.
	Driver   egl.Driver
	Compiler xkb.Compiler

	Windows WindowManager
	Timers  TimerManager
	Events  EventQueue
	Clock   Clock
}

type outputInfo struct {
	size     image.Point
	refresh  int32
	physical image.Point
	scale    int32
}

// System is a connection to the compositor along with the globals
// bound from it.
type System struct {
	cfg *config.Config

	client   *wl.Client
	poll     func(events int16, timeout int) (int16, error)
	registry *wl.Registry
	names    map[string]uint32

	compositor *wl.Compositor
	shell      *wl.Shell
	wmBase     *wl.XdgWmBase
	output     *wl.Output
	seat       *wl.Seat
	shm        *wl.Shm
	keyboard   *wl.Keyboard
	pointer    *wl.Pointer

	gfx      *egl.Manager
	compiler xkb.Compiler
	input    *input.Keyboard

	windows WindowManager
	timers  TimerManager
	events  EventQueue
	clock   Clock

	out outputInfo

	active  *Window
	hover   *Window
	enter   uint32
	cursor  *cursorImage
	visible bool

	err error
}

// New connects to the compositor and binds its globals. Globals that
// are missing don't cause an error here, but operations that need
// them fail later.
func New(opts Options) (*System, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Apply(); err != nil {
		return nil, err
	}

	s := System{
		cfg:      cfg,
		names:    make(map[string]uint32),
		compiler: opts.Compiler,
		windows:  opts.Windows,
		timers:   opts.Timers,
		events:   opts.Events,
		clock:    opts.Clock,
		visible:  true,
	}
	if s.clock == nil {
		s.clock = monotonic{start: time.Now()}
	}

	if opts.Conn != nil {
		s.client = wl.NewClient(opts.Conn)
	} else {
		client, err := wl.Dial(cfg.Socket)
		if err != nil {
			return nil, fmt.Errorf("connect to compositor: %w", err)
		}
		s.client = client
	}
	s.poll = s.client.Poll

	err := s.init(opts.Driver)
	if err != nil {
		s.Close()
		return nil, err
	}

	return &s, nil
}

func (s *System) init(driver egl.Driver) error {
	if s.compiler == nil {
		c, err := xkb.NewCompiler()
		if err != nil {
			debug.Logger().Warn("keymaps unavailable", "err", err)
		}
		s.compiler = c
	}

	s.client.Display().Listener = (*displayListener)(s)

	registry, err := s.client.Display().GetRegistry()
	if err != nil {
		return fmt.Errorf("get registry: %w", err)
	}
	s.registry = registry
	s.registry.Listener = (*registryListener)(s)

	// The first roundtrip binds the globals, the second collects the
	// initial state of the output and seat, and the third sends the
	// device requests made by the seat's listener and collects the
	// keyboard's keymap.
	for i := 0; i < 3; i++ {
		err = s.client.Roundtrip()
		if err != nil {
			return fmt.Errorf("roundtrip: %w", err)
		}
	}

	if driver == nil {
		d, err := egl.NewDriver()
		if err != nil {
			debug.Logger().Warn("OpenGL unavailable", "err", err)
			return nil
		}
		driver = d
	}
	gfx, err := egl.NewManager(driver, s.cfg.Attribs())
	if err != nil {
		debug.Logger().Warn("OpenGL unavailable", "err", err)
		return nil
	}
	s.gfx = gfx

	return nil
}

// Close releases every global and closes the connection. Windows must
// be closed first.
func (s *System) Close() error {
	s.releaseKeyboard()
	s.releasePointer()
	s.dropCursor()
	for _, inter := range []string{
		wl.SeatInterface,
		wl.OutputInterface,
		wl.XdgWmBaseInterface,
		wl.ShellInterface,
		wl.ShmInterface,
		wl.CompositorInterface,
	} {
		s.release(inter)
	}
	s.registry = nil

	var errs []error
	if s.gfx != nil {
		errs = append(errs, s.gfx.Close())
		s.gfx = nil
	}
	if s.compiler != nil {
		s.compiler.Close()
		s.compiler = nil
	}

	if s.client != nil {
		err := s.client.Flush()
		if (err != nil) && !errors.Is(err, wire.ErrWouldBlock) {
			errs = append(errs, err)
		}
		errs = append(errs, s.client.Close())
		s.client = nil
	}
	if s.err == nil {
		s.err = fmt.Errorf("%w: closed", ErrConnectionBroken)
	}

	return errors.Join(errs...)
}

// Err returns the error that broke the connection, if any.
func (s *System) Err() error {
	return s.err
}

// fail marks the connection as broken.
func (s *System) fail(err error) {
	if s.err != nil {
		return
	}
	debug.Logger().Error("connection broken", "err", err)
	s.err = fmt.Errorf("%w: %w", ErrConnectionBroken, err)
}

// ModifierKeys returns the modifier keys held down as of the latest
// modifiers event.
func (s *System) ModifierKeys() key.Modifiers {
	if s.input == nil {
		return 0
	}
	return s.input.ModifierKeys()
}

// CursorPosition always returns the origin. Wayland clients can't
// query the global cursor position.
func (s *System) CursorPosition() image.Point {
	return image.Point{}
}

// SetCursorPosition does nothing. Wayland clients can't warp the
// cursor.
func (s *System) SetCursorPosition(x, y int) error {
	return nil
}

// Buttons always returns an empty set.
func (s *System) Buttons() pointer.Buttons {
	return 0
}

// Clipboard always returns an empty string.
func (s *System) Clipboard(selection bool) string {
	return ""
}

// PutClipboard does nothing.
func (s *System) PutClipboard(text string, selection bool) {}

// NumDisplays always returns 1.
func (s *System) NumDisplays() int {
	return 1
}

// MainDisplayDimensions returns the size of the current mode of the
// output.
func (s *System) MainDisplayDimensions() (width, height int) {
	return s.out.size.X, s.out.size.Y
}

// AllDisplayDimensions returns the same as MainDisplayDimensions.
func (s *System) AllDisplayDimensions() (width, height int) {
	return s.MainDisplayDimensions()
}

// Graphics returns the EGL manager, or nil if OpenGL is unavailable.
func (s *System) Graphics() *egl.Manager {
	return s.gfx
}

// RepeatInfo returns the key repeat rate, in keys per second, and
// delay, in milliseconds, sent by the compositor.
func (s *System) RepeatInfo() (rate, delay int32) {
	if s.input == nil {
		return 0, 0
	}
	return s.input.RepeatInfo()
}
