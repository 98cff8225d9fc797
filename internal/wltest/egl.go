package wltest

import (
	"sync"

	"deedles.dev/wlsys/egl"
)

// GLDriver is an egl.Driver that hands out increasing handles and
// renders every pixel as Fill.
type GLDriver struct {
	Fill [4]byte

	m    sync.Mutex
	next uintptr
	live map[uintptr]string
	swap int
	max  [2]int32
	err  int32
}

func NewGLDriver() *GLDriver {
	return &GLDriver{
		Fill: [4]byte{0xff, 0xff, 0xff, 0xff},
		next: 0x1000,
		live: make(map[uintptr]string),
		err:  egl.Success,
	}
}

func (d *GLDriver) create(kind string) uintptr {
	d.m.Lock()
	defer d.m.Unlock()

	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *GLDriver) destroy(h uintptr) bool {
	d.m.Lock()
	defer d.m.Unlock()

	_, ok := d.live[h]
	delete(d.live, h)
	return ok
}

// Live returns the number of surfaces or contexts that have been
// created and not destroyed.
func (d *GLDriver) Live(kind string) int {
	d.m.Lock()
	defer d.m.Unlock()

	var n int
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// SetMaxSurface makes the creation of surfaces wider than w or taller
// than h fail with EGL_BAD_ALLOC. Zero removes the limit.
func (d *GLDriver) SetMaxSurface(w, h int32) {
	d.m.Lock()
	defer d.m.Unlock()

	d.max = [2]int32{w, h}
}

// Swaps returns the number of times SwapBuffers has been called.
func (d *GLDriver) Swaps() int {
	d.m.Lock()
	defer d.m.Unlock()

	return d.swap
}

func (d *GLDriver) GetDisplay() egl.Display {
	return egl.Display(d.create("display"))
}

func (d *GLDriver) Initialize(disp egl.Display) (int32, int32, bool) {
	return 1, 5, true
}

func (d *GLDriver) BindAPI(api int32) bool {
	return api == egl.OpenGLAPI
}

func (d *GLDriver) ChooseConfig(disp egl.Display, attribs []int32) (egl.FBConfig, bool) {
	return egl.FBConfig(d.create("config")), true
}

func (d *GLDriver) CreatePbufferSurface(disp egl.Display, config egl.FBConfig, attribs []int32) egl.Surface {
	d.m.Lock()
	var size [2]int32
	for i := 0; i+1 < len(attribs); i += 2 {
		switch attribs[i] {
		case egl.Width:
			size[0] = attribs[i+1]
		case egl.Height:
			size[1] = attribs[i+1]
		}
	}
	if (d.max != [2]int32{}) && ((size[0] > d.max[0]) || (size[1] > d.max[1])) {
		d.err = egl.BadAlloc
		d.m.Unlock()
		return egl.NoSurface
	}
	d.m.Unlock()

	return egl.Surface(d.create("surface"))
}

func (d *GLDriver) CreateContext(disp egl.Display, config egl.FBConfig, share egl.Context, attribs []int32) egl.Context {
	return egl.Context(d.create("context"))
}

func (d *GLDriver) MakeCurrent(disp egl.Display, draw, read egl.Surface, ctx egl.Context) bool {
	return true
}

func (d *GLDriver) SwapBuffers(disp egl.Display, s egl.Surface) bool {
	d.m.Lock()
	defer d.m.Unlock()

	d.swap++
	return true
}

func (d *GLDriver) DestroySurface(disp egl.Display, s egl.Surface) bool {
	return d.destroy(uintptr(s))
}

func (d *GLDriver) DestroyContext(disp egl.Display, ctx egl.Context) bool {
	return d.destroy(uintptr(ctx))
}

func (d *GLDriver) Terminate(disp egl.Display) bool {
	return d.destroy(uintptr(disp))
}

func (d *GLDriver) GetError() int32 {
	d.m.Lock()
	defer d.m.Unlock()

	err := d.err
	d.err = egl.Success
	return err
}

func (d *GLDriver) ReadPixels(width, height int, pix []byte) {
	for i := 0; i+4 <= len(pix); i += 4 {
		copy(pix[i:], d.Fill[:])
	}
}
