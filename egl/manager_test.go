package egl

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"deedles.dev/wlsys/internal/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDriver struct {
	calls []string
	next  uintptr
	fail  map[string]bool
	err   int32

	attribs []int32
	current [3]uintptr
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{next: 0x100, fail: make(map[string]bool)}
}

func (d *fakeDriver) call(name string, args ...any) bool {
	call := name
	if len(args) > 0 {
		call += fmt.Sprint(args...)
	}
	d.calls = append(d.calls, call)
	if d.fail[name] {
		d.err = BadAlloc
		return false
	}
	return true
}

func (d *fakeDriver) handle() uintptr {
	d.next++
	return d.next
}

func (d *fakeDriver) GetDisplay() Display {
	if !d.call("GetDisplay") {
		return NoDisplay
	}
	return Display(d.handle())
}

func (d *fakeDriver) Initialize(disp Display) (int32, int32, bool) {
	return 1, 5, d.call("Initialize")
}

func (d *fakeDriver) BindAPI(api int32) bool {
	return d.call("BindAPI")
}

func (d *fakeDriver) ChooseConfig(disp Display, attribs []int32) (FBConfig, bool) {
	d.attribs = attribs
	if !d.call("ChooseConfig") {
		return 0, false
	}
	return FBConfig(d.handle()), true
}

func (d *fakeDriver) CreatePbufferSurface(disp Display, config FBConfig, attribs []int32) Surface {
	if !d.call("CreatePbufferSurface", attribs[1], "x", attribs[3]) {
		return NoSurface
	}
	return Surface(d.handle())
}

func (d *fakeDriver) CreateContext(disp Display, config FBConfig, share Context, attribs []int32) Context {
	if !d.call("CreateContext") {
		return NoContext
	}
	return Context(d.handle())
}

func (d *fakeDriver) MakeCurrent(disp Display, draw, read Surface, ctx Context) bool {
	if !d.call("MakeCurrent", uintptr(draw), ",", uintptr(read), ",", uintptr(ctx)) {
		return false
	}
	d.current = [3]uintptr{uintptr(draw), uintptr(read), uintptr(ctx)}
	return true
}

func (d *fakeDriver) SwapBuffers(disp Display, s Surface) bool {
	return d.call("SwapBuffers")
}

func (d *fakeDriver) DestroySurface(disp Display, s Surface) bool {
	return d.call("DestroySurface", uintptr(s))
}

func (d *fakeDriver) DestroyContext(disp Display, ctx Context) bool {
	return d.call("DestroyContext", uintptr(ctx))
}

func (d *fakeDriver) Terminate(disp Display) bool {
	return d.call("Terminate")
}

func (d *fakeDriver) GetError() int32 {
	err := d.err
	d.err = Success
	return err
}

// ReadPixels fills each row with its row number, counting from the
// bottom.
func (d *fakeDriver) ReadPixels(width, height int, pix []byte) {
	d.call("ReadPixels")
	for y := 0; y < height; y++ {
		row := pix[y*width*4 : (y+1)*width*4]
		for i := range row {
			row[i] = byte(y)
		}
	}
}

func TestNewManager(t *testing.T) {
	d := newFakeDriver()
	m, err := NewManager(d, Attribs{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24})
	require.NoError(t, err)

	assert.Equal(t, []string{"GetDisplay", "Initialize", "BindAPI", "ChooseConfig"}, d.calls)
	assert.Equal(t, []int32{
		RedSize, 8,
		GreenSize, 8,
		BlueSize, 8,
		AlphaSize, 8,
		DepthSize, 24,
		SurfaceType, PbufferBit,
		RenderableType, OpenGLBit,
		None,
	}, d.attribs)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, "Terminate", d.calls[len(d.calls)-1])
}

func TestNewManagerFailure(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	debug.SetGraphics(true)
	t.Cleanup(func() {
		debug.SetGraphics(false)
		debug.SetOutput(os.Stderr)
	})

	d := newFakeDriver()
	d.fail["ChooseConfig"] = true
	_, err := NewManager(d, DefaultAttribs)

	var eglErr *Error
	require.ErrorAs(t, err, &eglErr)
	assert.Equal(t, "eglChooseConfig", eglErr.Site)
	assert.Equal(t, int32(BadAlloc), eglErr.Code)
	assert.EqualError(t, err, "eglChooseConfig: EGL_BAD_ALLOC")
	assert.Equal(t, "Terminate", d.calls[len(d.calls)-1])
	assert.Contains(t, buf.String(), "eglChooseConfig (manager.go:")
	assert.Contains(t, buf.String(), "EGL_BAD_ALLOC")
}

func TestFailureNotReported(t *testing.T) {
	var buf bytes.Buffer
	debug.SetOutput(&buf)
	t.Cleanup(func() { debug.SetOutput(os.Stderr) })

	d := newFakeDriver()
	d.fail["Initialize"] = true
	_, err := NewManager(d, DefaultAttribs)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestTeardownOrder(t *testing.T) {
	d := newFakeDriver()
	m, err := NewManager(d, DefaultAttribs)
	require.NoError(t, err)

	s, err := m.CreateSurface(4, 4)
	require.NoError(t, err)
	ctx, err := m.CreateContext()
	require.NoError(t, err)
	require.NoError(t, m.MakeCurrent(s, s, ctx))
	assert.Equal(t, ctx, m.Current())

	d.calls = nil
	require.NoError(t, m.Close())
	require.Len(t, d.calls, 4)
	assert.True(t, strings.HasPrefix(d.calls[0], "MakeCurrent0"))
	assert.Equal(t, fmt.Sprint("DestroyContext", uintptr(ctx)), d.calls[1])
	assert.Equal(t, fmt.Sprint("DestroySurface", uintptr(s)), d.calls[2])
	assert.Equal(t, "Terminate", d.calls[3])
	assert.Equal(t, NoContext, m.Current())

	_, err = m.CreateContext()
	assert.Error(t, err)
}

func TestDestroyCurrent(t *testing.T) {
	d := newFakeDriver()
	m, err := NewManager(d, DefaultAttribs)
	require.NoError(t, err)
	defer m.Close()

	s, err := m.CreateSurface(4, 4)
	require.NoError(t, err)
	ctx, err := m.CreateContext()
	require.NoError(t, err)
	require.NoError(t, m.MakeCurrent(s, s, ctx))

	require.NoError(t, m.DestroyContext(ctx))
	assert.Equal(t, [3]uintptr{}, d.current)
	require.NoError(t, m.DestroyContext(ctx))

	d.calls = nil
	require.NoError(t, m.DestroySurface(s))
	assert.Equal(t, []string{fmt.Sprint("DestroySurface", uintptr(s))}, d.calls)
}

func TestResizeSurface(t *testing.T) {
	d := newFakeDriver()
	m, err := NewManager(d, DefaultAttribs)
	require.NoError(t, err)
	defer m.Close()

	s, err := m.CreateSurface(4, 4)
	require.NoError(t, err)
	ctx, err := m.CreateContext()
	require.NoError(t, err)
	require.NoError(t, m.MakeCurrent(s, s, ctx))

	same, err := m.ResizeSurface(s, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, s, same)

	ns, err := m.ResizeSurface(s, 8, 2)
	require.NoError(t, err)
	assert.NotEqual(t, s, ns)
	size, ok := m.SurfaceSize(ns)
	assert.True(t, ok)
	assert.Equal(t, 8, size.X)
	assert.Equal(t, 2, size.Y)
	_, ok = m.SurfaceSize(s)
	assert.False(t, ok)
	assert.Equal(t, [3]uintptr{uintptr(ns), uintptr(ns), uintptr(ctx)}, d.current)
}

func TestSwapBuffers(t *testing.T) {
	d := newFakeDriver()
	m, err := NewManager(d, DefaultAttribs)
	require.NoError(t, err)
	defer m.Close()

	s, err := m.CreateSurface(2, 3)
	require.NoError(t, err)
	ctx, err := m.CreateContext()
	require.NoError(t, err)

	stride := 12
	dst := make([]byte, stride*3)
	assert.Error(t, m.SwapBuffers(s, dst, stride))

	require.NoError(t, m.MakeCurrent(s, s, ctx))
	assert.Error(t, m.SwapBuffers(s, dst[:8], stride))
	require.NoError(t, m.SwapBuffers(s, dst, stride))

	for y := 0; y < 3; y++ {
		row := dst[y*stride : y*stride+8]
		assert.Equal(t, bytes.Repeat([]byte{byte(2 - y)}, 8), row, "row %v", y)
		assert.Equal(t, []byte{0, 0, 0, 0}, dst[y*stride+8:(y+1)*stride])
	}
}

func TestErrorName(t *testing.T) {
	assert.Equal(t, "EGL_BAD_SURFACE", ErrorName(BadSurface))
	assert.Equal(t, "EGL_UNKNOWN_ERROR(0x1)", ErrorName(1))
}
