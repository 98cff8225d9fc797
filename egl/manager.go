package egl

import (
	"errors"
	"fmt"
	"image"

	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/internal/set"
)

// Attribs are the minimum sizes, in bits, requested when choosing a
// framebuffer config.
type Attribs struct {
	Red, Green, Blue, Alpha int
	Depth                   int
}

// DefaultAttribs requests any RGBA config with a depth buffer.
var DefaultAttribs = Attribs{Red: 1, Green: 1, Blue: 1, Alpha: 1, Depth: 1}

var errClosed = errors.New("egl: manager closed")

// Manager owns an EGL display and every context and surface created
// on it. It is not safe for concurrent use, and contexts must be made
// current on the thread that uses them.
type Manager struct {
	d      Driver
	disp   Display
	config FBConfig

	contexts set.Set[Context]
	surfaces map[Surface]image.Point

	draw, read Surface
	current    Context

	scratch []byte
}

// NewManager initializes the default display, binds the OpenGL API,
// and chooses one framebuffer config that every context and surface
// will share.
func NewManager(d Driver, attribs Attribs) (*Manager, error) {
	m := Manager{
		d:        d,
		contexts: set.New[Context](),
		surfaces: make(map[Surface]image.Point),
	}

	m.disp = d.GetDisplay()
	if m.disp == NoDisplay {
		return nil, m.fail("eglGetDisplay")
	}
	if _, _, ok := d.Initialize(m.disp); !ok {
		return nil, m.fail("eglInitialize")
	}
	if !d.BindAPI(OpenGLAPI) {
		err := m.fail("eglBindAPI")
		d.Terminate(m.disp)
		return nil, err
	}

	config, ok := d.ChooseConfig(m.disp, []int32{
		RedSize, int32(attribs.Red),
		GreenSize, int32(attribs.Green),
		BlueSize, int32(attribs.Blue),
		AlphaSize, int32(attribs.Alpha),
		DepthSize, int32(attribs.Depth),
		SurfaceType, PbufferBit,
		RenderableType, OpenGLBit,
		None,
	})
	if !ok {
		err := m.fail("eglChooseConfig")
		d.Terminate(m.disp)
		return nil, err
	}
	if config == 0 {
		d.Terminate(m.disp)
		return nil, errors.New("eglChooseConfig: no matching config")
	}
	m.config = config

	return &m, nil
}

// fail builds an error for a failed call, reporting it if graphics
// reporting is enabled.
func (m *Manager) fail(site string) error {
	code := m.d.GetError()
	debug.ReportGraphics(site, ErrorName(code))
	return &Error{Site: site, Code: code}
}

func (m *Manager) closed() bool {
	return m.disp == NoDisplay
}

// CreateSurface creates a surface of the given size.
func (m *Manager) CreateSurface(width, height int) (Surface, error) {
	if m.closed() {
		return NoSurface, errClosed
	}

	s := m.d.CreatePbufferSurface(m.disp, m.config, []int32{
		Width, int32(width),
		Height, int32(height),
		None,
	})
	if s == NoSurface {
		return NoSurface, m.fail("eglCreatePbufferSurface")
	}
	m.surfaces[s] = image.Pt(width, height)
	return s, nil
}

// SurfaceSize returns the size that s was created with.
func (m *Manager) SurfaceSize(s Surface) (image.Point, bool) {
	size, ok := m.surfaces[s]
	return size, ok
}

// ResizeSurface replaces s with a surface of a new size. If s was
// current, the replacement is made current in its place. s is invalid
// afterwards, even on error.
func (m *Manager) ResizeSurface(s Surface, width, height int) (Surface, error) {
	if m.closed() {
		return NoSurface, errClosed
	}
	if size, ok := m.surfaces[s]; ok && (size == image.Pt(width, height)) {
		return s, nil
	}

	ctx, draw, read := m.current, m.draw, m.read
	wasDraw, wasRead := draw == s, read == s
	err := m.DestroySurface(s)
	if err != nil {
		return NoSurface, err
	}

	ns, err := m.CreateSurface(width, height)
	if err != nil {
		return NoSurface, err
	}

	if wasDraw || wasRead {
		if wasDraw {
			draw = ns
		}
		if wasRead {
			read = ns
		}
		err = m.MakeCurrent(draw, read, ctx)
		if err != nil {
			return ns, err
		}
	}
	return ns, nil
}

// CreateContext creates a context using the manager's config.
func (m *Manager) CreateContext() (Context, error) {
	if m.closed() {
		return NoContext, errClosed
	}

	ctx := m.d.CreateContext(m.disp, m.config, NoContext, []int32{None})
	if ctx == NoContext {
		return NoContext, m.fail("eglCreateContext")
	}
	m.contexts.Add(ctx)
	return ctx, nil
}

// MakeCurrent binds ctx to the calling thread with the given draw and
// read surfaces.
func (m *Manager) MakeCurrent(draw, read Surface, ctx Context) error {
	if m.closed() {
		return errClosed
	}
	if (draw == m.draw) && (read == m.read) && (ctx == m.current) {
		return nil
	}

	if !m.d.MakeCurrent(m.disp, draw, read, ctx) {
		return m.fail("eglMakeCurrent")
	}
	m.draw, m.read, m.current = draw, read, ctx
	return nil
}

// ReleaseCurrent unbinds the current context, if any.
func (m *Manager) ReleaseCurrent() error {
	return m.MakeCurrent(NoSurface, NoSurface, NoContext)
}

// Current returns the context that is currently bound.
func (m *Manager) Current() Context {
	return m.current
}

// SwapBuffers presents s and copies its contents into dst, a top-down
// BGRA image with the given stride. s must be the current draw
// surface.
func (m *Manager) SwapBuffers(s Surface, dst []byte, stride int) error {
	if m.closed() {
		return errClosed
	}
	size, ok := m.surfaces[s]
	if !ok {
		return fmt.Errorf("swap buffers: unknown surface %#x", s)
	}
	if s != m.draw {
		return fmt.Errorf("swap buffers: surface %#x is not current", s)
	}

	if !m.d.SwapBuffers(m.disp, s) {
		return m.fail("eglSwapBuffers")
	}

	row := size.X * 4
	if (stride < row) || (len(dst) < stride*size.Y) {
		return fmt.Errorf("swap buffers: destination too small for %vx%v", size.X, size.Y)
	}

	if cap(m.scratch) < row*size.Y {
		m.scratch = make([]byte, row*size.Y)
	}
	pix := m.scratch[:row*size.Y]
	m.d.ReadPixels(size.X, size.Y, pix)

	for y := 0; y < size.Y; y++ {
		src := pix[(size.Y-1-y)*row:]
		copy(dst[y*stride:y*stride+row], src[:row])
	}
	return nil
}

// DestroyContext destroys ctx, releasing it first if it is current.
func (m *Manager) DestroyContext(ctx Context) error {
	if !m.contexts.Remove(ctx) {
		return nil
	}
	if ctx == m.current {
		if err := m.ReleaseCurrent(); err != nil {
			return err
		}
	}
	if !m.d.DestroyContext(m.disp, ctx) {
		return m.fail("eglDestroyContext")
	}
	return nil
}

// DestroySurface destroys s, releasing the current context first if s
// is bound to it.
func (m *Manager) DestroySurface(s Surface) error {
	if _, ok := m.surfaces[s]; !ok {
		return nil
	}
	delete(m.surfaces, s)

	if (s == m.draw) || (s == m.read) {
		if err := m.ReleaseCurrent(); err != nil {
			return err
		}
	}
	if !m.d.DestroySurface(m.disp, s) {
		return m.fail("eglDestroySurface")
	}
	return nil
}

// Close releases the current context, destroys every remaining context
// and surface, and terminates the display. It is safe to call more
// than once.
func (m *Manager) Close() error {
	if m.closed() {
		return nil
	}

	var errs []error
	if err := m.ReleaseCurrent(); err != nil {
		errs = append(errs, err)
	}
	for ctx := range m.contexts {
		errs = append(errs, m.DestroyContext(ctx))
	}
	for s := range m.surfaces {
		errs = append(errs, m.DestroySurface(s))
	}
	if !m.d.Terminate(m.disp) {
		errs = append(errs, m.fail("eglTerminate"))
	}
	m.disp = NoDisplay

	return errors.Join(errs...)
}
