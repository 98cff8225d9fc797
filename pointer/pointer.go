// Package pointer contains utilities for handling pointer input.
package pointer

// Button indicates a mouse button.
type Button uint32

// These values were pulled from linux/input-event-codes.h.
const (
	ButtonLeft Button = 0x110 + iota
	ButtonRight
	ButtonMiddle
	ButtonSide
	ButtonExtra
	ButtonForward
	ButtonBack
	ButtonTask
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonSide:
		return "side"
	case ButtonExtra:
		return "extra"
	case ButtonForward:
		return "forward"
	case ButtonBack:
		return "back"
	case ButtonTask:
		return "task"
	}

	return "unknown"
}

// Buttons is a set of held buttons.
type Buttons uint8

// Mask returns the bit for b in a Buttons set, or zero for buttons
// that can not be represented.
func (b Button) Mask() Buttons {
	if (b < ButtonLeft) || (b > ButtonTask) {
		return 0
	}
	return 1 << (b - ButtonLeft)
}

// Has reports whether b is held.
func (bs Buttons) Has(b Button) bool {
	mask := b.Mask()
	return (mask != 0) && (bs&mask != 0)
}

// With returns bs with b set or cleared.
func (bs Buttons) With(b Button, down bool) Buttons {
	if down {
		return bs | b.Mask()
	}
	return bs &^ b.Mask()
}
