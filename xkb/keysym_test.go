package xkb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysymText(t *testing.T) {
	tests := []struct {
		sym  Keysym
		text string
	}{
		{SymUpperA, "A"},
		{SymLowerA + 2, "c"},
		{Sym0 + 7, "7"},
		{SymSpace, " "},
		{0x00e9, "é"},
		{unicodeOffset + 0x20ac, "€"},
		{SymKP0 + 3, "3"},
		{SymKPMultiply, "*"},
		{SymReturn, ""},
		{SymShiftL, ""},
		{SymF1, ""},
		{SymNoSymbol, ""},
		{unicodeOffset + 0x200b, ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.text, test.sym.Text(), "%#x", uint32(test.sym))
	}
}

func TestNoCompilerIsError(t *testing.T) {
	c, err := NewCompiler()
	if err != nil {
		assert.ErrorIs(t, err, ErrUnavailable)
		return
	}
	c.Close()
}
