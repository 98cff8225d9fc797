package input

import (
	"testing"

	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/xkb"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		sym  xkb.Keysym
		code key.Code
	}{
		{xkb.SymLowerA, key.A},
		{xkb.SymLowerZ, key.Z},
		{xkb.SymUpperA + 16, key.Q},
		{xkb.Sym9, key.Num9},
		{xkb.SymF1 + 11, key.F12},
		{xkb.SymF24, key.F24},
		{xkb.SymKP0 + 5, key.Numpad5},
		{xkb.SymKPEnter, key.NumpadEnter},
		{xkb.SymKPHome, key.Numpad7},
		{xkb.SymBracketLeft, key.LeftBracket},
		{xkb.SymPageDown, key.DownPage},
		{xkb.SymISOLevel3Shift, key.RightAlt},
		{xkb.SymAudioNext, key.MediaLast},
		{xkb.SymNoSymbol, key.Unknown},
		{0x1008ff2a, key.Unknown},
	}

	for _, test := range tests {
		assert.Equal(t, test.code, Translate(test.sym), "%#x", uint32(test.sym))
	}
}

func TestTranslateTotal(t *testing.T) {
	for sym := xkb.Keysym(0); sym < 0x10000; sym++ {
		assert.NotPanics(t, func() { Translate(sym) })
	}
}
