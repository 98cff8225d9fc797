package wlsys

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/egl"
	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/shm"
)

// DrawingContext is the way a window's contents are rendered.
type DrawingContext int

const (
	// DrawingContextNone windows are drawn into Image and shown with
	// Present.
	DrawingContextNone DrawingContext = iota

	// DrawingContextOpenGL windows are drawn with OpenGL and shown
	// with SwapBuffers.
	DrawingContextOpenGL
)

func (c DrawingContext) String() string {
	switch c {
	case DrawingContextNone:
		return "None"
	case DrawingContextOpenGL:
		return "OpenGL"
	default:
		return fmt.Sprintf("DrawingContext(%d)", int(c))
	}
}

type WindowState int

const (
	WindowStateNormal WindowState = iota
	WindowStateMaximized
	WindowStateMinimized
	WindowStateFullscreen
)

func (s WindowState) String() string {
	switch s {
	case WindowStateNormal:
		return "Normal"
	case WindowStateMaximized:
		return "Maximized"
	case WindowStateMinimized:
		return "Minimized"
	case WindowStateFullscreen:
		return "Fullscreen"
	default:
		return fmt.Sprintf("WindowState(%d)", int(s))
	}
}

// WindowOptions are the parameters of a new window. Stereo, Exclusive,
// AASamples, and Parent are accepted for compatibility but have no
// effect.
type WindowOptions struct {
	Title         string
	Left, Top     int
	Width, Height int
	State         WindowState
	Context       DrawingContext

	Stereo    bool
	Exclusive bool
	AASamples int
	Parent    *Window
}

type stage int

const (
	stageCreated stage = iota
	stageConfiguring
	stageMapped
	stageDestroyed
)

// Window is a top-level window made of a compositor surface, a shell
// surface, a shared-memory drawable, and, for OpenGL windows, an EGL
// surface and context.
type Window struct {
	sys   *System
	stage stage

	title   string
	state   WindowState
	ctxType DrawingContext
	bounds  image.Rectangle
	pending image.Point

	surface      *wl.Surface
	shellSurface *wl.ShellSurface
	xdgSurface   *wl.XdgSurface
	toplevel     *wl.XdgToplevel
	drawable     *shm.ImageBuffer

	gfxSurface egl.Surface
	gfxContext egl.Context

	sync  *wl.Callback
	frame *wl.Callback
}

// CreateWindow creates a window, registers it with the WindowManager,
// and pushes a size event for it. Update events follow, one per frame
// the compositor wants drawn.
func (s *System) CreateWindow(opts WindowOptions) (*Window, error) {
	switch {
	case s.err != nil:
		return nil, s.err
	case s.compositor == nil:
		return nil, ErrNoCompositor
	case (s.wmBase == nil) && (s.shell == nil):
		return nil, ErrNoShell
	case s.shm == nil:
		return nil, ErrNoShm
	}

	switch opts.Context {
	case DrawingContextNone:
	case DrawingContextOpenGL:
		if s.gfx == nil {
			return nil, fmt.Errorf("%w: OpenGL is unavailable", ErrUnsupportedContext)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedContext, opts.Context)
	}

	w := Window{
		sys:     s,
		ctxType: opts.Context,
		bounds:  image.Rect(opts.Left, opts.Top, opts.Left+max(opts.Width, 1), opts.Top+max(opts.Height, 1)),
	}
	err := w.init(opts)
	if err != nil {
		w.Close()
		return nil, err
	}

	if s.windows != nil {
		err = s.windows.AddWindow(&w)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("add window: %w", err)
		}
	}

	s.flush()
	s.push(Event{Kind: EventWindowSize, Window: &w})
	return &w, nil
}

func (w *Window) init(opts WindowOptions) (err error) {
	s := w.sys

	w.surface, err = s.compositor.CreateSurface()
	if err != nil {
		debug.ReportWL("wl_compositor.create_surface", err)
		return fmt.Errorf("create surface: %w", err)
	}
	w.surface.UserData = w

	if s.wmBase != nil {
		w.xdgSurface, err = s.wmBase.GetXdgSurface(w.surface)
		if err != nil {
			debug.ReportWL("xdg_wm_base.get_xdg_surface", err)
			return fmt.Errorf("create shell surface: %w", err)
		}
		w.xdgSurface.Listener = (*xdgSurfaceListener)(w)

		w.toplevel, err = w.xdgSurface.GetToplevel()
		if err != nil {
			debug.ReportWL("xdg_surface.get_toplevel", err)
			return fmt.Errorf("create toplevel: %w", err)
		}
		w.toplevel.Listener = (*toplevelListener)(w)
	} else {
		w.shellSurface, err = s.shell.GetShellSurface(w.surface)
		if err != nil {
			debug.ReportWL("wl_shell.get_shell_surface", err)
			return fmt.Errorf("create shell surface: %w", err)
		}
		w.shellSurface.Listener = (*shellSurfaceListener)(w)
	}

	size := w.bounds.Size()
	w.drawable, err = shm.NewImageBuffer(s.shm, int32(size.X), int32(size.Y))
	if err != nil {
		return fmt.Errorf("create drawable: %w", err)
	}

	if w.ctxType == DrawingContextOpenGL {
		w.gfxSurface, err = s.gfx.CreateSurface(size.X, size.Y)
		if err != nil {
			return fmt.Errorf("create graphics surface: %w", err)
		}
		w.gfxContext, err = s.gfx.CreateContext()
		if err != nil {
			return fmt.Errorf("create graphics context: %w", err)
		}
	}

	w.SetTitle(opts.Title)
	if w.shellSurface != nil {
		if err := w.shellSurface.SetToplevel(); err != nil {
			debug.ReportWL("wl_shell_surface.set_toplevel", err)
		}
	}
	if opts.State != WindowStateNormal {
		if err := w.SetState(opts.State); err != nil {
			debug.Logger().Warn("initial window state", "state", opts.State, "err", err)
		}
	}

	// xdg surfaces must not have a buffer attached before the first
	// configure.
	w.stage = stageConfiguring
	if w.shellSurface != nil {
		w.stage = stageMapped
		w.attach()
	}
	if err := w.surface.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	w.sync, err = s.client.Display().Sync()
	if err != nil {
		debug.ReportWL("wl_display.sync", err)
		return fmt.Errorf("sync: %w", err)
	}
	w.sync.Listener = (*syncListener)(w)

	return w.ActivateDrawingContext()
}

// Valid reports whether the window is usable.
func (w *Window) Valid() bool {
	return (w.stage == stageConfiguring) || (w.stage == stageMapped)
}

// Close destroys the window's resources in dependency order. It is
// safe to call more than once.
func (w *Window) Close() error {
	if w.stage == stageDestroyed {
		return nil
	}
	w.stage = stageDestroyed
	s := w.sys

	if w.sync != nil {
		w.sync.Cancel()
		w.sync = nil
	}
	if w.frame != nil {
		w.frame.Cancel()
		w.frame = nil
	}

	var errs []error
	if s.gfx != nil {
		if (w.gfxContext != egl.NoContext) && (s.gfx.Current() == w.gfxContext) {
			errs = append(errs, s.gfx.ReleaseCurrent())
		}
		if w.gfxContext != egl.NoContext {
			errs = append(errs, s.gfx.DestroyContext(w.gfxContext))
			w.gfxContext = egl.NoContext
		}
		if w.gfxSurface != egl.NoSurface {
			errs = append(errs, s.gfx.DestroySurface(w.gfxSurface))
			w.gfxSurface = egl.NoSurface
		}
	}

	if w.drawable != nil {
		w.drawable.Destroy()
		w.drawable = nil
	}

	if (w.toplevel != nil) && w.toplevel.Alive() {
		errs = append(errs, w.toplevel.Destroy())
	}
	if (w.xdgSurface != nil) && w.xdgSurface.Alive() {
		errs = append(errs, w.xdgSurface.Destroy())
	}
	if (w.shellSurface != nil) && w.shellSurface.Alive() {
		w.shellSurface.Destroy()
	}
	w.toplevel, w.xdgSurface, w.shellSurface = nil, nil, nil

	if (w.surface != nil) && w.surface.Alive() {
		w.surface.UserData = nil
		errs = append(errs, w.surface.Destroy())
	}
	w.surface = nil

	if s.active == w {
		s.active = nil
	}
	if s.hover == w {
		s.hover = nil
	}
	if s.client != nil {
		s.flush()
	}

	return errors.Join(errs...)
}

// attach attaches the drawable and damages all of it.
func (w *Window) attach() {
	size := w.bounds.Size()
	if err := w.surface.Attach(w.drawable.Buffer(), 0, 0); err != nil {
		debug.ReportWL("wl_surface.attach", err)
		return
	}
	if err := w.surface.Damage(0, 0, int32(size.X), int32(size.Y)); err != nil {
		debug.ReportWL("wl_surface.damage", err)
	}
}

// Present shows the current contents of the drawable. Before an xdg
// window has been configured it does nothing, and the contents are
// shown once it has been.
func (w *Window) Present() error {
	switch w.stage {
	case stageDestroyed:
		return ErrWindowClosed
	case stageMapped:
	default:
		return nil
	}

	w.attach()
	if err := w.surface.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	w.sys.flush()
	return nil
}

// SwapBuffers copies what has been rendered with OpenGL into the
// drawable and presents it.
func (w *Window) SwapBuffers() error {
	if w.stage == stageDestroyed {
		return ErrWindowClosed
	}
	if w.ctxType != DrawingContextOpenGL {
		return fmt.Errorf("%w: %v", ErrUnsupportedContext, w.ctxType)
	}

	err := w.ActivateDrawingContext()
	if err != nil {
		return err
	}
	err = w.sys.gfx.SwapBuffers(w.gfxSurface, w.drawable.Pix(), int(w.drawable.Stride()))
	if err != nil {
		return err
	}
	return w.Present()
}

// ActivateDrawingContext makes the window's OpenGL context current.
// It does nothing for other drawing contexts.
func (w *Window) ActivateDrawingContext() error {
	if w.stage == stageDestroyed {
		return ErrWindowClosed
	}
	if w.ctxType != DrawingContextOpenGL {
		return nil
	}
	return w.sys.gfx.MakeCurrent(w.gfxSurface, w.gfxSurface, w.gfxContext)
}

// DrawingContext returns the window's drawing context type.
func (w *Window) DrawingContext() DrawingContext {
	return w.ctxType
}

// Image returns the drawable's pixels. It is invalidated whenever the
// window is resized.
func (w *Window) Image() draw.Image {
	if w.drawable == nil {
		return nil
	}
	return w.drawable.Image()
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) SetTitle(title string) {
	w.title = title
	full := w.sys.cfg.TitlePrefix + title

	var err error
	switch {
	case w.toplevel != nil:
		err = w.toplevel.SetTitle(full)
	case w.shellSurface != nil:
		err = w.shellSurface.SetTitle(full)
	}
	if err != nil {
		debug.ReportWL("set_title", err)
	}
}

// ClientBounds returns the area of the window that can be drawn to.
func (w *Window) ClientBounds() image.Rectangle {
	return w.bounds
}

// WindowBounds returns the same as ClientBounds, as the compositor
// draws any decorations.
func (w *Window) WindowBounds() image.Rectangle {
	return w.bounds
}

// ScreenToClient converts screen coordinates to window coordinates.
func (w *Window) ScreenToClient(p image.Point) image.Point {
	return p.Sub(w.bounds.Min)
}

// ClientToScreen converts window coordinates to screen coordinates.
func (w *Window) ClientToScreen(p image.Point) image.Point {
	return p.Add(w.bounds.Min)
}

// SetClientSize resizes the window.
func (w *Window) SetClientSize(width, height int) error {
	if w.stage == stageDestroyed {
		return ErrWindowClosed
	}

	changed, err := w.resize(width, height)
	if err != nil {
		return err
	}
	if w.xdgSurface != nil {
		if err := w.xdgSurface.SetWindowGeometry(0, 0, int32(width), int32(height)); err != nil {
			debug.ReportWL("xdg_surface.set_window_geometry", err)
		}
	}
	if changed {
		w.sys.push(Event{Kind: EventWindowSize, Window: w})
	}
	return nil
}

// resize changes the size of the drawable and graphics surface.
func (w *Window) resize(width, height int) (changed bool, err error) {
	size := image.Pt(width, height)
	old := w.bounds.Size()
	if (width <= 0) || (height <= 0) || (size == old) {
		return false, nil
	}

	err = w.drawable.Resize(int32(width), int32(height))
	if err != nil {
		return false, fmt.Errorf("resize drawable: %w", err)
	}
	if w.ctxType == DrawingContextOpenGL {
		gs, err := w.sys.gfx.ResizeSurface(w.gfxSurface, width, height)
		if gs == egl.NoSurface {
			err = fmt.Errorf("resize graphics surface: %w", err)
			return false, errors.Join(err, w.restore(old))
		}
		w.gfxSurface = gs
		if err != nil {
			// The new surface exists but couldn't be made current.
			w.bounds.Max = w.bounds.Min.Add(size)
			return true, fmt.Errorf("resize graphics surface: %w", err)
		}
	}

	w.bounds.Max = w.bounds.Min.Add(size)
	return true, nil
}

// restore returns the drawable and graphics surface to size after a
// failed resize.
func (w *Window) restore(size image.Point) error {
	err := w.drawable.Resize(int32(size.X), int32(size.Y))
	if err != nil {
		return fmt.Errorf("restore drawable: %w", err)
	}
	w.gfxSurface, err = w.sys.gfx.CreateSurface(size.X, size.Y)
	if err != nil {
		return fmt.Errorf("restore graphics surface: %w", err)
	}
	return w.ActivateDrawingContext()
}

func (w *Window) State() WindowState {
	return w.state
}

// SetState asks the compositor to change the window's state. wl_shell
// windows can't be minimized.
func (w *Window) SetState(state WindowState) error {
	if w.stage == stageDestroyed {
		return ErrWindowClosed
	}

	var err error
	if w.toplevel != nil {
		switch state {
		case WindowStateNormal:
			err = errors.Join(w.toplevel.UnsetFullscreen(), w.toplevel.UnsetMaximized())
		case WindowStateMaximized:
			err = w.toplevel.SetMaximized()
		case WindowStateMinimized:
			err = w.toplevel.SetMinimized()
		case WindowStateFullscreen:
			err = w.toplevel.SetFullscreen(w.sys.output)
		default:
			return fmt.Errorf("unknown window state %v", state)
		}
	} else {
		switch state {
		case WindowStateNormal:
			err = w.shellSurface.SetToplevel()
		case WindowStateMaximized:
			err = w.shellSurface.SetMaximized(w.sys.output)
		case WindowStateFullscreen:
			err = w.shellSurface.SetFullscreen(wl.ShellSurfaceFullscreenMethodDefault, 0, w.sys.output)
		case WindowStateMinimized:
			return errors.New("wl_shell windows can't be minimized")
		default:
			return fmt.Errorf("unknown window state %v", state)
		}
	}
	if err != nil {
		return err
	}

	w.state = state
	return nil
}

// redraw runs a link of the redraw chain.
func (w *Window) redraw() {
	if w.stage == stageDestroyed {
		return
	}
	w.sys.push(Event{Kind: EventWindowUpdate, Window: w})

	// The update handler may have closed the window.
	if w.stage == stageDestroyed {
		return
	}
	w.requestFrame()
}

// requestFrame requests the next frame callback unless one is already
// outstanding.
func (w *Window) requestFrame() {
	if w.frame != nil {
		return
	}

	frame, err := w.surface.Frame()
	if err != nil {
		debug.ReportWL("wl_surface.frame", err)
		return
	}
	frame.Listener = (*frameListener)(w)
	w.frame = frame

	if err := w.surface.Commit(); err != nil {
		debug.ReportWL("wl_surface.commit", err)
	}
}

type syncListener Window

func (w *syncListener) Done(data uint32) {
	w.sync = nil
	(*Window)(w).redraw()
}

type frameListener Window

func (w *frameListener) Done(time uint32) {
	w.frame = nil
	(*Window)(w).redraw()
}

type shellSurfaceListener Window

func (w *shellSurfaceListener) Ping(serial uint32) {
	if err := w.shellSurface.Pong(serial); err != nil {
		debug.ReportWL("wl_shell_surface.pong", err)
	}
}

func (w *shellSurfaceListener) Configure(edges wl.ShellSurfaceResize, width, height int32) {
	win := (*Window)(w)
	if win.stage == stageDestroyed {
		return
	}

	changed, err := win.resize(int(width), int(height))
	if err != nil {
		debug.Logger().Error("configure", "width", width, "height", height, "err", err)
	}
	if changed {
		w.sys.push(Event{Kind: EventWindowSize, Window: win})
	}
}

func (w *shellSurfaceListener) PopupDone() {}

type xdgSurfaceListener Window

func (w *xdgSurfaceListener) Configure(serial uint32) {
	win := (*Window)(w)
	if win.stage == stageDestroyed {
		return
	}

	if err := w.xdgSurface.AckConfigure(serial); err != nil {
		debug.ReportWL("xdg_surface.ack_configure", err)
	}

	changed, err := win.resize(w.pending.X, w.pending.Y)
	if err != nil {
		debug.Logger().Error("configure", "size", w.pending, "err", err)
	}
	w.pending = image.Point{}

	if w.stage == stageConfiguring {
		w.stage = stageMapped
		win.attach()
		if err := w.surface.Commit(); err != nil {
			debug.ReportWL("wl_surface.commit", err)
		}
	}
	if changed {
		w.sys.push(Event{Kind: EventWindowSize, Window: win})
	}
}

type toplevelListener Window

func (w *toplevelListener) Configure(width, height int32, states []wl.XdgToplevelState) {
	w.pending = image.Pt(int(width), int(height))

	state := WindowStateNormal
	for _, s := range states {
		switch s {
		case wl.XdgToplevelStateFullscreen:
			state = WindowStateFullscreen
		case wl.XdgToplevelStateMaximized:
			if state != WindowStateFullscreen {
				state = WindowStateMaximized
			}
		}
	}
	w.state = state
}

func (w *toplevelListener) Close() {
	if w.stage == stageDestroyed {
		return
	}
	w.sys.push(Event{Kind: EventWindowClose, Window: (*Window)(w)})
}
