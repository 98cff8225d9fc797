// Package xkb wraps the parts of libxkbcommon needed to turn Wayland
// keyboard events into keysyms. The interfaces allow a different
// implementation to be used where libxkbcommon isn't available.
package xkb

import "errors"

// ErrUnavailable is returned by NewCompiler when the package was built
// without libxkbcommon support.
var ErrUnavailable = errors.New("xkbcommon support not available")

// ModInvalid is returned by Keymap.ModIndex for unknown modifiers.
const ModInvalid uint32 = 0xffffffff

// Modifier names as used in keymaps.
const (
	ModNameShift = "Shift"
	ModNameCtrl  = "Control"
	ModNameAlt   = "Mod1"
	ModNameLogo  = "Mod4"
)

// StateComponent selects parts of the modifier state.
type StateComponent uint32

const (
	ModsDepressed StateComponent = 1 << iota
	ModsLatched
	ModsLocked
	ModsEffective
)

// Compiler compiles keymaps.
type Compiler interface {
	// Compile compiles a keymap in the XKB text v1 format.
	Compile(text []byte) (Keymap, error)
	Close()
}

// Keymap is a compiled keymap.
type Keymap interface {
	// ModIndex returns the index of the named modifier, or ModInvalid.
	ModIndex(name string) uint32

	// NewState creates a new decode state for the keymap.
	NewState() (State, error)

	Close()
}

// State tracks the modifiers and layout in effect for a keymap.
type State interface {
	// UpdateMask sets the modifier and layout state as sent by the
	// compositor.
	UpdateMask(depressed, latched, locked, group uint32)

	// OneSym returns the keysym for an XKB keycode, or SymNoSymbol if
	// the key does not produce exactly one.
	OneSym(keycode uint32) Keysym

	// SerializeMods returns the mask of modifiers active in the given
	// components.
	SerializeMods(components StateComponent) uint32

	Close()
}
