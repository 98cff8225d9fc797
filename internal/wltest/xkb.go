package wltest

import (
	"errors"
	"sync"

	"deedles.dev/wlsys/xkb"
)

// Keymap describes a keymap compiled by Compiler. Keys maps XKB
// keycodes to the keysym they produce and Mods maps modifier names to
// indices.
type Keymap struct {
	Keys map[uint32]xkb.Keysym
	Mods map[string]uint32
}

// USKeymap is a small subset of a US layout using evdev keycodes.
var USKeymap = Keymap{
	Keys: map[uint32]xkb.Keysym{
		9:   xkb.SymEscape,
		10:  xkb.Sym0 + 1,
		36:  xkb.SymReturn,
		38:  xkb.SymLowerA,
		50:  xkb.SymShiftL,
		62:  xkb.SymShiftR,
		37:  xkb.SymControlL,
		64:  xkb.SymAltL,
		65:  xkb.SymSpace,
		67:  xkb.SymF1,
		133: xkb.SymSuperL,
	},
	Mods: map[string]uint32{
		xkb.ModNameShift: 0,
		"Lock":           1,
		xkb.ModNameCtrl:  2,
		xkb.ModNameAlt:   3,
		xkb.ModNameLogo:  6,
	},
}

// Compiler is an xkb.Compiler that maps keymap text to a Keymap
// description instead of parsing it.
type Compiler struct {
	m        sync.Mutex
	keymaps  map[string]Keymap
	compiled []string
	open     int
}

// NewCompiler returns a Compiler that knows the given keymaps by their
// text.
func NewCompiler(keymaps map[string]Keymap) *Compiler {
	return &Compiler{keymaps: keymaps}
}

func (c *Compiler) Compile(text []byte) (xkb.Keymap, error) {
	c.m.Lock()
	defer c.m.Unlock()

	for (len(text) > 0) && (text[len(text)-1] == 0) {
		text = text[:len(text)-1]
	}
	c.compiled = append(c.compiled, string(text))

	km, ok := c.keymaps[string(text)]
	if !ok {
		return nil, errors.New("invalid keymap")
	}
	c.open++
	return &fakeKeymap{c: c, km: km}, nil
}

func (c *Compiler) Close() {}

// Compiled returns the text of every keymap passed to Compile.
func (c *Compiler) Compiled() []string {
	c.m.Lock()
	defer c.m.Unlock()

	return append([]string(nil), c.compiled...)
}

// Open returns the number of keymaps and states that have not been
// closed.
func (c *Compiler) Open() int {
	c.m.Lock()
	defer c.m.Unlock()

	return c.open
}

func (c *Compiler) release() {
	c.m.Lock()
	defer c.m.Unlock()

	c.open--
}

type fakeKeymap struct {
	c      *Compiler
	km     Keymap
	closed bool
}

func (k *fakeKeymap) ModIndex(name string) uint32 {
	index, ok := k.km.Mods[name]
	if !ok {
		return xkb.ModInvalid
	}
	return index
}

func (k *fakeKeymap) NewState() (xkb.State, error) {
	k.c.m.Lock()
	k.c.open++
	k.c.m.Unlock()

	return &fakeState{c: k.c, km: k.km}, nil
}

func (k *fakeKeymap) Close() {
	if !k.closed {
		k.closed = true
		k.c.release()
	}
}

type fakeState struct {
	c      *Compiler
	km     Keymap
	closed bool

	depressed, latched, locked, group uint32
}

func (s *fakeState) UpdateMask(depressed, latched, locked, group uint32) {
	s.depressed, s.latched, s.locked, s.group = depressed, latched, locked, group
}

func (s *fakeState) OneSym(keycode uint32) xkb.Keysym {
	sym := s.km.Keys[keycode]
	shift := s.km.Mods[xkb.ModNameShift]
	if ((s.depressed|s.latched)&(1<<shift) != 0) && (sym >= xkb.SymLowerA) && (sym <= xkb.SymLowerZ) {
		sym -= xkb.SymLowerA - xkb.SymUpperA
	}
	return sym
}

func (s *fakeState) SerializeMods(components xkb.StateComponent) uint32 {
	var mods uint32
	if components&xkb.ModsDepressed != 0 {
		mods |= s.depressed
	}
	if components&xkb.ModsLatched != 0 {
		mods |= s.latched
	}
	if components&xkb.ModsLocked != 0 {
		mods |= s.locked
	}
	if components&xkb.ModsEffective != 0 {
		mods |= s.depressed | s.latched | s.locked
	}
	return mods
}

func (s *fakeState) Close() {
	if !s.closed {
		s.closed = true
		s.c.release()
	}
}
