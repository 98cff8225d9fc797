package input

import (
	"fmt"

	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/xkb"
)

var keysyms = map[xkb.Keysym]key.Code{
	xkb.SymBackSpace: key.Backspace,
	xkb.SymTab:       key.Tab,
	xkb.SymLinefeed:  key.Linefeed,
	xkb.SymClear:     key.Clear,
	xkb.SymReturn:    key.Enter,
	xkb.SymEscape:    key.Esc,
	xkb.SymSpace:     key.Space,

	xkb.SymApostrophe:   key.Quote,
	xkb.SymComma:        key.Comma,
	xkb.SymMinus:        key.Minus,
	xkb.SymPlus:         key.Plus,
	xkb.SymPeriod:       key.Period,
	xkb.SymSlash:        key.Slash,
	xkb.SymSemicolon:    key.Semicolon,
	xkb.SymEqual:        key.Equal,
	xkb.SymBracketLeft:  key.LeftBracket,
	xkb.SymBracketRight: key.RightBracket,
	xkb.SymBackslash:    key.Backslash,
	xkb.SymGrave:        key.AccentGrave,
	xkb.SymLess:         key.GrLess,

	xkb.SymShiftL:         key.LeftShift,
	xkb.SymShiftR:         key.RightShift,
	xkb.SymControlL:       key.LeftControl,
	xkb.SymControlR:       key.RightControl,
	xkb.SymAltL:           key.LeftAlt,
	xkb.SymAltR:           key.RightAlt,
	xkb.SymISOLevel3Shift: key.RightAlt,
	xkb.SymMetaL:          key.LeftAlt,
	xkb.SymMetaR:          key.RightAlt,
	xkb.SymSuperL:         key.OS,
	xkb.SymSuperR:         key.OS,
	xkb.SymMenu:           key.App,

	xkb.SymCapsLock:   key.CapsLock,
	xkb.SymNumLock:    key.NumLock,
	xkb.SymScrollLock: key.ScrollLock,

	xkb.SymLeft:  key.LeftArrow,
	xkb.SymRight: key.RightArrow,
	xkb.SymUp:    key.UpArrow,
	xkb.SymDown:  key.DownArrow,

	xkb.SymPrint:    key.PrintScreen,
	xkb.SymPause:    key.Pause,
	xkb.SymInsert:   key.Insert,
	xkb.SymDelete:   key.Delete,
	xkb.SymHome:     key.Home,
	xkb.SymEnd:      key.End,
	xkb.SymPageUp:   key.UpPage,
	xkb.SymPageDown: key.DownPage,

	xkb.SymKPDecimal:  key.NumpadPeriod,
	xkb.SymKPEnter:    key.NumpadEnter,
	xkb.SymKPAdd:      key.NumpadPlus,
	xkb.SymKPSubtract: key.NumpadMinus,
	xkb.SymKPMultiply: key.NumpadAsterisk,
	xkb.SymKPDivide:   key.NumpadSlash,

	// Keypad keys with num lock off.
	xkb.SymKPInsert:   key.Numpad0,
	xkb.SymKPEnd:      key.Numpad1,
	xkb.SymKPDown:     key.Numpad2,
	xkb.SymKPPageDown: key.Numpad3,
	xkb.SymKPLeft:     key.Numpad4,
	xkb.SymKPBegin:    key.Numpad5,
	xkb.SymKPRight:    key.Numpad6,
	xkb.SymKPHome:     key.Numpad7,
	xkb.SymKPUp:       key.Numpad8,
	xkb.SymKPPageUp:   key.Numpad9,
	xkb.SymKPDelete:   key.NumpadPeriod,

	xkb.SymAudioPlay: key.MediaPlay,
	xkb.SymAudioStop: key.MediaStop,
	xkb.SymAudioPrev: key.MediaFirst,
	xkb.SymAudioNext: key.MediaLast,
}

// Translate returns the key code for sym. Keysyms with no matching
// key translate to key.Unknown.
func Translate(sym xkb.Keysym) key.Code {
	switch {
	case (sym >= xkb.SymLowerA) && (sym <= xkb.SymLowerZ):
		return key.A + key.Code(sym-xkb.SymLowerA)
	case (sym >= xkb.SymUpperA) && (sym <= xkb.SymUpperZ):
		return key.A + key.Code(sym-xkb.SymUpperA)
	case (sym >= xkb.Sym0) && (sym <= xkb.Sym9):
		return key.Num0 + key.Code(sym-xkb.Sym0)
	case (sym >= xkb.SymF1) && (sym <= xkb.SymF24):
		return key.F1 + key.Code(sym-xkb.SymF1)
	case (sym >= xkb.SymKP0) && (sym <= xkb.SymKP9):
		return key.Numpad0 + key.Code(sym-xkb.SymKP0)
	}

	if c, ok := keysyms[sym]; ok {
		return c
	}

	if sym != xkb.SymNoSymbol {
		debug.Logger().Debug("unknown keysym", "sym", fmt.Sprintf("%#x", uint32(sym)))
	}
	return key.Unknown
}
