//go:build linux && cgo

package xkb

/*
#cgo linux pkg-config: xkbcommon

#include <stdlib.h>
#include <xkbcommon/xkbcommon.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

type compiler struct {
	ctx *C.struct_xkb_context
}

// NewCompiler creates a Compiler backed by libxkbcommon.
func NewCompiler() (Compiler, error) {
	ctx := C.xkb_context_new(C.XKB_CONTEXT_NO_FLAGS)
	if ctx == nil {
		return nil, errors.New("xkb_context_new failed")
	}
	return &compiler{ctx: ctx}, nil
}

func (c *compiler) Compile(text []byte) (Keymap, error) {
	// The compositor includes the terminating NUL in the size.
	for (len(text) > 0) && (text[len(text)-1] == 0) {
		text = text[:len(text)-1]
	}
	if len(text) == 0 {
		return nil, errors.New("empty keymap")
	}

	km := C.xkb_keymap_new_from_buffer(
		c.ctx,
		(*C.char)(unsafe.Pointer(&text[0])),
		C.size_t(len(text)),
		C.XKB_KEYMAP_FORMAT_TEXT_V1,
		C.XKB_KEYMAP_COMPILE_NO_FLAGS,
	)
	if km == nil {
		return nil, errors.New("xkb_keymap_new_from_buffer failed")
	}
	return &keymap{km: km}, nil
}

func (c *compiler) Close() {
	if c.ctx != nil {
		C.xkb_context_unref(c.ctx)
		c.ctx = nil
	}
}

type keymap struct {
	km *C.struct_xkb_keymap
}

func (k *keymap) ModIndex(name string) uint32 {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	return uint32(C.xkb_keymap_mod_get_index(k.km, cname))
}

func (k *keymap) NewState() (State, error) {
	st := C.xkb_state_new(k.km)
	if st == nil {
		return nil, errors.New("xkb_state_new failed")
	}
	return &state{st: st}, nil
}

func (k *keymap) Close() {
	if k.km != nil {
		C.xkb_keymap_unref(k.km)
		k.km = nil
	}
}

type state struct {
	st *C.struct_xkb_state
}

func (s *state) UpdateMask(depressed, latched, locked, group uint32) {
	C.xkb_state_update_mask(s.st,
		C.xkb_mod_mask_t(depressed),
		C.xkb_mod_mask_t(latched),
		C.xkb_mod_mask_t(locked),
		0, 0,
		C.xkb_layout_index_t(group),
	)
}

func (s *state) OneSym(keycode uint32) Keysym {
	return Keysym(C.xkb_state_key_get_one_sym(s.st, C.xkb_keycode_t(keycode)))
}

func (s *state) SerializeMods(components StateComponent) uint32 {
	return uint32(C.xkb_state_serialize_mods(s.st, C.enum_xkb_state_component(components)))
}

func (s *state) Close() {
	if s.st != nil {
		C.xkb_state_unref(s.st)
		s.st = nil
	}
}
