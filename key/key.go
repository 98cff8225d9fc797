// Package key defines the normalized key codes and modifier state
// reported by keyboard events, independent of any keymap.
package key

import "fmt"

// Code identifies a physical key by meaning. Printable keys use their
// ASCII value; the rest start at 0x100.
type Code int

const (
	Unknown Code = 0

	Backspace Code = 0x08
	Tab       Code = 0x09
	Linefeed  Code = 0x0A
	Clear     Code = 0x0C
	Enter     Code = 0x0D
	Esc       Code = 0x1B
	Space     Code = ' '
	Quote     Code = 0x27
	Comma     Code = ','
	Minus     Code = '-'
	Plus      Code = '+'
	Period    Code = '.'
	Slash     Code = '/'
	Semicolon Code = ';'
	Equal     Code = '='

	LeftBracket  Code = '['
	Backslash    Code = '\\'
	RightBracket Code = ']'
	AccentGrave  Code = '`'
)

const (
	Num0 Code = '0' + iota
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9
)

const (
	A Code = 'A' + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

const (
	LeftShift Code = 0x100 + iota
	RightShift
	LeftControl
	RightControl
	LeftAlt
	RightAlt
	OS
	GrLess
	App

	CapsLock
	NumLock
	ScrollLock

	LeftArrow
	RightArrow
	UpArrow
	DownArrow

	PrintScreen
	Pause

	Insert
	Delete
	Home
	End
	UpPage
	DownPage

	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadPeriod
	NumpadEnter
	NumpadPlus
	NumpadMinus
	NumpadAsterisk
	NumpadSlash

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	MediaPlay
	MediaStop
	MediaFirst
	MediaLast
)

var names = map[Code]string{
	Unknown:      "Unknown",
	Backspace:    "Backspace",
	Tab:          "Tab",
	Linefeed:     "Linefeed",
	Clear:        "Clear",
	Enter:        "Enter",
	Esc:          "Esc",
	Space:        "Space",
	Quote:        "Quote",
	Comma:        "Comma",
	Minus:        "Minus",
	Plus:         "Plus",
	Period:       "Period",
	Slash:        "Slash",
	Semicolon:    "Semicolon",
	Equal:        "Equal",
	LeftBracket:  "LeftBracket",
	Backslash:    "Backslash",
	RightBracket: "RightBracket",
	AccentGrave:  "AccentGrave",

	LeftShift:    "LeftShift",
	RightShift:   "RightShift",
	LeftControl:  "LeftControl",
	RightControl: "RightControl",
	LeftAlt:      "LeftAlt",
	RightAlt:     "RightAlt",
	OS:           "OS",
	GrLess:       "GrLess",
	App:          "App",
	CapsLock:     "CapsLock",
	NumLock:      "NumLock",
	ScrollLock:   "ScrollLock",
	LeftArrow:    "LeftArrow",
	RightArrow:   "RightArrow",
	UpArrow:      "UpArrow",
	DownArrow:    "DownArrow",
	PrintScreen:  "PrintScreen",
	Pause:        "Pause",
	Insert:       "Insert",
	Delete:       "Delete",
	Home:         "Home",
	End:          "End",
	UpPage:       "UpPage",
	DownPage:     "DownPage",

	NumpadPeriod:   "NumpadPeriod",
	NumpadEnter:    "NumpadEnter",
	NumpadPlus:     "NumpadPlus",
	NumpadMinus:    "NumpadMinus",
	NumpadAsterisk: "NumpadAsterisk",
	NumpadSlash:    "NumpadSlash",

	MediaPlay:  "MediaPlay",
	MediaStop:  "MediaStop",
	MediaFirst: "MediaFirst",
	MediaLast:  "MediaLast",
}

func (c Code) String() string {
	switch {
	case (c >= A) && (c <= Z):
		return string(rune(c))
	case (c >= Num0) && (c <= Num9):
		return "Num" + string(rune(c))
	case (c >= Numpad0) && (c <= Numpad9):
		return fmt.Sprintf("Numpad%v", int(c-Numpad0))
	case (c >= F1) && (c <= F24):
		return fmt.Sprintf("F%v", int(c-F1)+1)
	}

	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%#x)", int(c))
}
