package xkb

import "unicode"

// Keysym is a symbolic key meaning as defined by xkbcommon-keysyms.h.
type Keysym uint32

const SymNoSymbol Keysym = 0

// Latin-1 keysyms share their values with the characters they produce.
const (
	SymSpace        Keysym = 0x0020
	SymApostrophe   Keysym = 0x0027
	SymPlus         Keysym = 0x002b
	SymComma        Keysym = 0x002c
	SymMinus        Keysym = 0x002d
	SymPeriod       Keysym = 0x002e
	SymSlash        Keysym = 0x002f
	Sym0            Keysym = 0x0030
	Sym9            Keysym = 0x0039
	SymSemicolon    Keysym = 0x003b
	SymLess         Keysym = 0x003c
	SymEqual        Keysym = 0x003d
	SymUpperA       Keysym = 0x0041
	SymUpperZ       Keysym = 0x005a
	SymBracketLeft  Keysym = 0x005b
	SymBackslash    Keysym = 0x005c
	SymBracketRight Keysym = 0x005d
	SymGrave        Keysym = 0x0060
	SymLowerA       Keysym = 0x0061
	SymLowerZ       Keysym = 0x007a
)

const (
	SymISOLevel3Shift Keysym = 0xfe03

	SymBackSpace  Keysym = 0xff08
	SymTab        Keysym = 0xff09
	SymLinefeed   Keysym = 0xff0a
	SymClear      Keysym = 0xff0b
	SymReturn     Keysym = 0xff0d
	SymPause      Keysym = 0xff13
	SymScrollLock Keysym = 0xff14
	SymEscape     Keysym = 0xff1b

	SymHome     Keysym = 0xff50
	SymLeft     Keysym = 0xff51
	SymUp       Keysym = 0xff52
	SymRight    Keysym = 0xff53
	SymDown     Keysym = 0xff54
	SymPageUp   Keysym = 0xff55
	SymPageDown Keysym = 0xff56
	SymEnd      Keysym = 0xff57

	SymPrint   Keysym = 0xff61
	SymInsert  Keysym = 0xff63
	SymMenu    Keysym = 0xff67
	SymNumLock Keysym = 0xff7f

	SymKPEnter    Keysym = 0xff8d
	SymKPHome     Keysym = 0xff95
	SymKPLeft     Keysym = 0xff96
	SymKPUp       Keysym = 0xff97
	SymKPRight    Keysym = 0xff98
	SymKPDown     Keysym = 0xff99
	SymKPPageUp   Keysym = 0xff9a
	SymKPPageDown Keysym = 0xff9b
	SymKPEnd      Keysym = 0xff9c
	SymKPBegin    Keysym = 0xff9d
	SymKPInsert   Keysym = 0xff9e
	SymKPDelete   Keysym = 0xff9f
	SymKPMultiply Keysym = 0xffaa
	SymKPAdd      Keysym = 0xffab
	SymKPSubtract Keysym = 0xffad
	SymKPDecimal  Keysym = 0xffae
	SymKPDivide   Keysym = 0xffaf
	SymKP0        Keysym = 0xffb0
	SymKP9        Keysym = 0xffb9
	SymKPEqual    Keysym = 0xffbd

	SymF1  Keysym = 0xffbe
	SymF24 Keysym = 0xffd5

	SymShiftL   Keysym = 0xffe1
	SymShiftR   Keysym = 0xffe2
	SymControlL Keysym = 0xffe3
	SymControlR Keysym = 0xffe4
	SymCapsLock Keysym = 0xffe5
	SymMetaL    Keysym = 0xffe7
	SymMetaR    Keysym = 0xffe8
	SymAltL     Keysym = 0xffe9
	SymAltR     Keysym = 0xffea
	SymSuperL   Keysym = 0xffeb
	SymSuperR   Keysym = 0xffec

	SymDelete Keysym = 0xffff
)

const (
	SymAudioPlay Keysym = 0x1008ff14
	SymAudioStop Keysym = 0x1008ff15
	SymAudioPrev Keysym = 0x1008ff16
	SymAudioNext Keysym = 0x1008ff17
)

// unicodeOffset is added to a code point to form its keysym when no
// legacy keysym exists for it.
const unicodeOffset = 0x01000000

var keypadRunes = map[Keysym]rune{
	0xff80:        ' ',
	SymKPMultiply: '*',
	SymKPAdd:      '+',
	0xffac:        ',',
	SymKPSubtract: '-',
	SymKPDecimal:  '.',
	SymKPDivide:   '/',
	SymKPEqual:    '=',
}

// Rune returns the character that sym produces, or -1 if it doesn't
// produce a printable character. Only the Latin-1, Unicode, and keypad
// keysyms are covered.
func (sym Keysym) Rune() rune {
	var r rune = -1
	switch {
	case ((sym >= 0x20) && (sym <= 0x7e)) || ((sym >= 0xa0) && (sym <= 0xff)):
		r = rune(sym)
	case (sym >= unicodeOffset+0xa0) && (sym <= unicodeOffset+unicode.MaxRune):
		r = rune(sym - unicodeOffset)
	case (sym >= SymKP0) && (sym <= SymKP9):
		r = '0' + rune(sym-SymKP0)
	default:
		if kr, ok := keypadRunes[sym]; ok {
			r = kr
		}
	}

	if (r < 0) || !unicode.IsPrint(r) {
		return -1
	}
	return r
}

// Text returns the UTF-8 text that sym produces. It is empty for
// keysyms that do not produce printable text.
func (sym Keysym) Text() string {
	r := sym.Rune()
	if r < 0 {
		return ""
	}
	return string(r)
}
