// Package input turns the raw keyboard events sent by the compositor
// into key codes, text, and modifier state.
package input

import (
	"errors"
	"fmt"
	"os"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/shm"
	"deedles.dev/wlsys/xkb"
)

var (
	// ErrUnsupportedFormat is returned for keymaps that are not in the
	// xkb text v1 format.
	ErrUnsupportedFormat = errors.New("unsupported keymap format")

	// ErrNoKeymap is returned when an event arrives before a keymap has
	// been compiled.
	ErrNoKeymap = errors.New("no keymap")
)

// evdevOffset converts evdev scancodes to XKB keycodes.
const evdevOffset = 8

type modifier int

const (
	modCtrlLeft modifier = iota
	modCtrlRight
	modAltLeft
	modAltRight
	modShift
	modSuper
	numModifiers
)

var modifierNames = [numModifiers]string{
	modCtrlLeft:  xkb.ModNameCtrl,
	modCtrlRight: xkb.ModNameCtrl,
	modAltLeft:   xkb.ModNameAlt,
	modAltRight:  xkb.ModNameAlt,
	modShift:     xkb.ModNameShift,
	modSuper:     xkb.ModNameLogo,
}

// Key is a translated key event.
type Key struct {
	Code key.Code
	Sym  xkb.Keysym

	// Text is the UTF-8 text produced by the key, if any.
	Text string
}

// Keyboard holds the keymap and modifier state of a single wl_keyboard.
// The zero value is not usable; use NewKeyboard.
type Keyboard struct {
	compiler xkb.Compiler
	keymap   xkb.Keymap
	state    xkb.State

	active uint32
	masks  [numModifiers]uint32

	rate, delay int32
}

// NewKeyboard returns a Keyboard that compiles keymaps with c. c is
// not closed by the Keyboard.
func NewKeyboard(c xkb.Compiler) *Keyboard {
	return &Keyboard{compiler: c}
}

// Ready reports whether a keymap has been compiled.
func (kb *Keyboard) Ready() bool {
	return kb.state != nil
}

// Keymap compiles the keymap in file and replaces the current one. It
// always closes file. If the format is unsupported the current keymap
// is kept, but if compilation fails there is no keymap afterwards.
func (kb *Keyboard) Keymap(format wl.KeyboardKeymapFormat, file *os.File, size uint32) error {
	if file == nil {
		return errors.New("keymap: no file")
	}
	defer file.Close()

	if format != wl.KeyboardKeymapFormatXkbV1 {
		return fmt.Errorf("keymap: %w: %v", ErrUnsupportedFormat, format)
	}
	if kb.compiler == nil {
		kb.reset()
		return fmt.Errorf("keymap: %w", xkb.ErrUnavailable)
	}

	text, err := shm.MapReadOnly(file, int(size))
	if err != nil {
		kb.reset()
		return fmt.Errorf("keymap: map: %w", err)
	}
	defer text.Unmap()

	km, err := kb.compiler.Compile(text)
	if err != nil {
		kb.reset()
		return fmt.Errorf("keymap: compile: %w", err)
	}
	st, err := km.NewState()
	if err != nil {
		km.Close()
		kb.reset()
		return fmt.Errorf("keymap: new state: %w", err)
	}

	kb.reset()
	kb.keymap = km
	kb.state = st
	for i, name := range modifierNames {
		kb.masks[i] = 0
		if index := km.ModIndex(name); index != xkb.ModInvalid {
			kb.masks[i] = 1 << index
		}
	}

	return nil
}

// Key translates an evdev scancode using the current state.
func (kb *Keyboard) Key(scancode uint32) (Key, error) {
	if kb.state == nil {
		return Key{}, ErrNoKeymap
	}

	sym := kb.state.OneSym(scancode + evdevOffset)
	return Key{
		Code: Translate(sym),
		Sym:  sym,
		Text: sym.Text(),
	}, nil
}

// Modifiers updates the decode state with the masks sent by the
// compositor.
func (kb *Keyboard) Modifiers(depressed, latched, locked, group uint32) error {
	if kb.state == nil {
		return ErrNoKeymap
	}

	kb.state.UpdateMask(depressed, latched, locked, group)
	kb.active = kb.state.SerializeMods(xkb.ModsDepressed | xkb.ModsLatched)
	return nil
}

// ModifierKeys reports the modifiers that are currently held. Right
// shift can not be told apart from left shift and is never reported.
func (kb *Keyboard) ModifierKeys() key.Modifiers {
	var m key.Modifiers
	m = m.With(key.ModLeftShift, kb.has(modShift))
	m = m.With(key.ModLeftControl, kb.has(modCtrlLeft))
	m = m.With(key.ModRightControl, kb.has(modCtrlRight))
	m = m.With(key.ModLeftAlt, kb.has(modAltLeft))
	m = m.With(key.ModRightAlt, kb.has(modAltRight))
	m = m.With(key.ModOS, kb.has(modSuper))
	return m
}

func (kb *Keyboard) has(mod modifier) bool {
	return kb.active&kb.masks[mod] != 0
}

// SetRepeatInfo records the key repeat settings. rate is in keys per
// second and delay in milliseconds.
func (kb *Keyboard) SetRepeatInfo(rate, delay int32) {
	kb.rate, kb.delay = rate, delay
}

// RepeatInfo returns the values last passed to SetRepeatInfo. A rate
// of zero disables repeating.
func (kb *Keyboard) RepeatInfo() (rate, delay int32) {
	return kb.rate, kb.delay
}

func (kb *Keyboard) reset() {
	if kb.state != nil {
		kb.state.Close()
		kb.state = nil
	}
	if kb.keymap != nil {
		kb.keymap.Close()
		kb.keymap = nil
	}
	kb.active = 0
	kb.masks = [numModifiers]uint32{}
}

// Close releases the keymap and state.
func (kb *Keyboard) Close() {
	kb.reset()
}
