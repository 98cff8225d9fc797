//go:build linux && cgo

package egl

/*
#cgo linux pkg-config: egl gl
#cgo CFLAGS: -DEGL_NO_X11

#include <EGL/egl.h>
#include <GL/gl.h>
*/
import "C"

import "unsafe"

const glBGRA = 0x80e1

type driver struct{}

// NewDriver returns a Driver that calls libEGL and libGL.
func NewDriver() (Driver, error) {
	return driver{}, nil
}

func eglDisplay(disp Display) C.EGLDisplay {
	return C.EGLDisplay(unsafe.Pointer(uintptr(disp)))
}

func eglConfig(config FBConfig) C.EGLConfig {
	return C.EGLConfig(unsafe.Pointer(uintptr(config)))
}

func eglContext(ctx Context) C.EGLContext {
	return C.EGLContext(unsafe.Pointer(uintptr(ctx)))
}

func eglSurface(s Surface) C.EGLSurface {
	return C.EGLSurface(unsafe.Pointer(uintptr(s)))
}

func attribList(attribs []int32) *C.EGLint {
	return (*C.EGLint)(unsafe.Pointer(&attribs[0]))
}

func (driver) GetDisplay() Display {
	var native C.EGLNativeDisplayType
	return Display(uintptr(unsafe.Pointer(C.eglGetDisplay(native))))
}

func (driver) Initialize(disp Display) (major, minor int32, ok bool) {
	var maj, min C.EGLint
	ret := C.eglInitialize(eglDisplay(disp), &maj, &min)
	return int32(maj), int32(min), ret == C.EGL_TRUE
}

func (driver) BindAPI(api int32) bool {
	return C.eglBindAPI(C.EGLenum(api)) == C.EGL_TRUE
}

func (driver) ChooseConfig(disp Display, attribs []int32) (FBConfig, bool) {
	var config C.EGLConfig
	var n C.EGLint
	if C.eglChooseConfig(eglDisplay(disp), attribList(attribs), &config, 1, &n) != C.EGL_TRUE {
		return 0, false
	}
	if n == 0 {
		return 0, true
	}
	return FBConfig(uintptr(unsafe.Pointer(config))), true
}

func (driver) CreatePbufferSurface(disp Display, config FBConfig, attribs []int32) Surface {
	s := C.eglCreatePbufferSurface(eglDisplay(disp), eglConfig(config), attribList(attribs))
	return Surface(uintptr(unsafe.Pointer(s)))
}

func (driver) CreateContext(disp Display, config FBConfig, share Context, attribs []int32) Context {
	ctx := C.eglCreateContext(eglDisplay(disp), eglConfig(config), eglContext(share), attribList(attribs))
	return Context(uintptr(unsafe.Pointer(ctx)))
}

func (driver) MakeCurrent(disp Display, draw, read Surface, ctx Context) bool {
	return C.eglMakeCurrent(eglDisplay(disp), eglSurface(draw), eglSurface(read), eglContext(ctx)) == C.EGL_TRUE
}

func (driver) SwapBuffers(disp Display, s Surface) bool {
	return C.eglSwapBuffers(eglDisplay(disp), eglSurface(s)) == C.EGL_TRUE
}

func (driver) DestroySurface(disp Display, s Surface) bool {
	return C.eglDestroySurface(eglDisplay(disp), eglSurface(s)) == C.EGL_TRUE
}

func (driver) DestroyContext(disp Display, ctx Context) bool {
	return C.eglDestroyContext(eglDisplay(disp), eglContext(ctx)) == C.EGL_TRUE
}

func (driver) Terminate(disp Display) bool {
	return C.eglTerminate(eglDisplay(disp)) == C.EGL_TRUE
}

func (driver) GetError() int32 {
	return int32(C.eglGetError())
}

func (driver) ReadPixels(width, height int, pix []byte) {
	if len(pix) == 0 {
		return
	}

	C.glFinish()
	C.glPixelStorei(C.GL_PACK_ALIGNMENT, 4)
	C.glReadPixels(0, 0, C.GLsizei(width), C.GLsizei(height), glBGRA, C.GL_UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
}
