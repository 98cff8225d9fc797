package wlsys

import (
	"image"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/shm"
	"deedles.dev/ximage/xcursor"
)

const (
	cursorName = "left_ptr"
	cursorSize = 24
)

// cursorImage is the pointer image shown over windows.
type cursorImage struct {
	surface *wl.Surface
	buf     *shm.ImageBuffer
	hot     image.Point

	// failed is set when the theme couldn't be loaded so that it isn't
	// tried again on every enter.
	failed bool
}

func (c *cursorImage) ready() bool {
	return !c.failed && (c.surface != nil) && c.surface.Alive()
}

// loadCursor loads the default cursor from the user's cursor theme
// into a surface.
func (s *System) loadCursor() *cursorImage {
	if (s.compositor == nil) || (s.shm == nil) {
		return &cursorImage{failed: true}
	}

	theme, err := xcursor.LoadTheme("")
	if err != nil {
		debug.Logger().Debug("load cursor theme", "err", err)
		return &cursorImage{failed: true}
	}
	cursors, ok := theme.Cursors[cursorName]
	if !ok {
		debug.Logger().Debug("cursor not in theme", "name", cursorName)
		return &cursorImage{failed: true}
	}
	img := cursors.Images[cursors.BestSize(cursorSize)][0]

	bounds := img.Image.Rect
	buf, err := shm.NewImageBuffer(s.shm, int32(bounds.Dx()), int32(bounds.Dy()))
	if err != nil {
		debug.ReportWL("cursor buffer", err)
		return &cursorImage{failed: true}
	}

	src, dst := img.Image.Pix, buf.Pix()
	srcStride, dstStride := img.Image.Stride(), int(buf.Stride())
	for y := 0; y < bounds.Dy(); y++ {
		copy(dst[y*dstStride:(y+1)*dstStride], src[y*srcStride:])
	}

	surface, err := s.compositor.CreateSurface()
	if err != nil {
		buf.Destroy()
		debug.ReportWL("wl_compositor.create_surface", err)
		return &cursorImage{failed: true}
	}
	surface.Attach(buf.Buffer(), 0, 0)
	surface.Damage(0, 0, int32(bounds.Dx()), int32(bounds.Dy()))
	surface.Commit()

	return &cursorImage{
		surface: surface,
		buf:     buf,
		hot:     img.Hot,
	}
}

// applyCursor sets the pointer image for the surface the pointer last
// entered.
func (s *System) applyCursor() {
	if (s.pointer == nil) || (s.hover == nil) {
		return
	}

	if !s.visible {
		if err := s.pointer.SetCursor(s.enter, nil, 0, 0); err != nil {
			debug.ReportWL("wl_pointer.set_cursor", err)
		}
		return
	}

	if s.cursor == nil {
		s.cursor = s.loadCursor()
	}
	if !s.cursor.ready() {
		return
	}
	err := s.pointer.SetCursor(s.enter, s.cursor.surface, int32(s.cursor.hot.X), int32(s.cursor.hot.Y))
	if err != nil {
		debug.ReportWL("wl_pointer.set_cursor", err)
	}
}

// SetCursorVisibility shows or hides the pointer while it is over one
// of the System's windows.
func (s *System) SetCursorVisibility(visible bool) {
	if visible == s.visible {
		return
	}
	s.visible = visible
	s.applyCursor()
}

func (s *System) dropCursor() {
	if s.cursor == nil {
		return
	}

	if s.cursor.buf != nil {
		s.cursor.buf.Destroy()
	}
	if (s.cursor.surface != nil) && s.cursor.surface.Alive() {
		s.cursor.surface.Destroy()
	}
	s.cursor = nil
}
