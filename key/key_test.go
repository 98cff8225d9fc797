package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		str  string
	}{
		{A, "A"},
		{Z, "Z"},
		{Num5, "Num5"},
		{Numpad7, "Numpad7"},
		{F1, "F1"},
		{F24, "F24"},
		{Esc, "Esc"},
		{MediaLast, "MediaLast"},
		{Unknown, "Unknown"},
		{Code(0x7F), "Code(0x7f)"},
	}

	for _, test := range tests {
		assert.Equal(t, test.str, test.code.String())
	}
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	assert.Equal(t, "None", m.String())

	m = m.With(ModLeftShift, true).With(ModRightAlt, true)
	assert.True(t, m.Has(ModLeftShift))
	assert.True(t, m.Has(ModLeftShift|ModRightAlt))
	assert.False(t, m.Has(ModLeftShift|ModOS))
	assert.Equal(t, "LeftShift|RightAlt", m.String())

	m = m.With(ModLeftShift, false)
	assert.Equal(t, ModRightAlt, m)
}
