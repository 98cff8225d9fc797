// Package egl manages the EGL display, framebuffer configuration,
// contexts, and surfaces used to render windows with OpenGL.
//
// Rendering happens into pbuffer surfaces whose contents are read back
// into a window's shared-memory drawable when buffers are swapped, so
// no native window type is required.
package egl

import "fmt"

// Handles to EGL objects. The zero value of each is the corresponding
// EGL_NO_* value.
type (
	Display  uintptr
	FBConfig uintptr
	Context  uintptr
	Surface  uintptr
)

const (
	NoDisplay Display = 0
	NoContext Context = 0
	NoSurface Surface = 0
)

// Attributes and values used when choosing a config and creating
// surfaces.
const (
	AlphaSize      = 0x3021
	BlueSize       = 0x3022
	GreenSize      = 0x3023
	RedSize        = 0x3024
	DepthSize      = 0x3025
	SurfaceType    = 0x3033
	None           = 0x3038
	RenderableType = 0x3040
	Height         = 0x3056
	Width          = 0x3057

	PbufferBit = 0x0001
	WindowBit  = 0x0004
	OpenGLBit  = 0x0008

	OpenGLAPI = 0x30a2
)

// Error codes returned by eglGetError.
const (
	Success           = 0x3000
	NotInitialized    = 0x3001
	BadAccess         = 0x3002
	BadAlloc          = 0x3003
	BadAttribute      = 0x3004
	BadConfig         = 0x3005
	BadContext        = 0x3006
	BadCurrentSurface = 0x3007
	BadDisplay        = 0x3008
	BadMatch          = 0x3009
	BadNativePixmap   = 0x300a
	BadNativeWindow   = 0x300b
	BadParameter      = 0x300c
	BadSurface        = 0x300d
	ContextLost       = 0x300e
)

var errorNames = map[int32]string{
	Success:           "EGL_SUCCESS",
	NotInitialized:    "EGL_NOT_INITIALIZED",
	BadAccess:         "EGL_BAD_ACCESS",
	BadAlloc:          "EGL_BAD_ALLOC",
	BadAttribute:      "EGL_BAD_ATTRIBUTE",
	BadConfig:         "EGL_BAD_CONFIG",
	BadContext:        "EGL_BAD_CONTEXT",
	BadCurrentSurface: "EGL_BAD_CURRENT_SURFACE",
	BadDisplay:        "EGL_BAD_DISPLAY",
	BadMatch:          "EGL_BAD_MATCH",
	BadNativePixmap:   "EGL_BAD_NATIVE_PIXMAP",
	BadNativeWindow:   "EGL_BAD_NATIVE_WINDOW",
	BadParameter:      "EGL_BAD_PARAMETER",
	BadSurface:        "EGL_BAD_SURFACE",
	ContextLost:       "EGL_CONTEXT_LOST",
}

// ErrorName returns the symbolic name of an EGL error code.
func ErrorName(code int32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("EGL_UNKNOWN_ERROR(%#x)", code)
}

// Error is a failed EGL call.
type Error struct {
	// Site is the name of the call that failed.
	Site string
	Code int32
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v", err.Site, ErrorName(err.Code))
}

// Driver is the set of EGL and GL entry points used by a Manager. The
// boolean results mirror EGL_TRUE and EGL_FALSE.
type Driver interface {
	GetDisplay() Display
	Initialize(disp Display) (major, minor int32, ok bool)
	BindAPI(api int32) bool
	ChooseConfig(disp Display, attribs []int32) (FBConfig, bool)
	CreatePbufferSurface(disp Display, config FBConfig, attribs []int32) Surface
	CreateContext(disp Display, config FBConfig, share Context, attribs []int32) Context
	MakeCurrent(disp Display, draw, read Surface, ctx Context) bool
	SwapBuffers(disp Display, surface Surface) bool
	DestroySurface(disp Display, surface Surface) bool
	DestroyContext(disp Display, ctx Context) bool
	Terminate(disp Display) bool
	GetError() int32

	// ReadPixels waits for rendering to finish and reads the current
	// draw surface into pix as tightly packed BGRA rows, bottom row
	// first.
	ReadPixels(width, height int, pix []byte)
}
