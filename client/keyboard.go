package wl

import (
	"os"

	"deedles.dev/wlsys/wire"
)

var keyboardDescriptor = descriptor{
	name:    "wl_keyboard",
	version: 5,
	events:  []string{"keymap", "enter", "leave", "key", "modifiers", "repeat_info"},
}

type KeyboardKeymapFormat uint32

const (
	KeyboardKeymapFormatNoKeymap KeyboardKeymapFormat = 0
	KeyboardKeymapFormatXkbV1    KeyboardKeymapFormat = 1
)

type KeyboardKeyState uint32

const (
	KeyboardKeyStateReleased KeyboardKeyState = 0
	KeyboardKeyStatePressed  KeyboardKeyState = 1
)

// KeyboardListener receives wl_keyboard events. Keymap takes ownership
// of file and must close it.
type KeyboardListener interface {
	Keymap(format KeyboardKeymapFormat, file *os.File, size uint32)
	Enter(serial uint32, surface *Surface, keys []byte)
	Leave(serial uint32, surface *Surface)
	Key(serial, time, key uint32, state KeyboardKeyState)
	Modifiers(serial, depressed, latched, locked, group uint32)
	RepeatInfo(rate, delay int32)
}

type Keyboard struct {
	proxy
	Listener KeyboardListener
}

func (kb *Keyboard) listening() bool {
	return !kb.dead && (kb.Listener != nil)
}

func (kb *Keyboard) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		format := msg.ReadUint()
		file := msg.ReadFile()
		size := msg.ReadUint()
		if err := msg.Err(); err != nil {
			if file != nil {
				file.Close()
			}
			return err
		}
		if !kb.listening() {
			return file.Close()
		}
		kb.Listener.Keymap(KeyboardKeymapFormat(format), file, size)
		return nil

	case 1:
		serial := msg.ReadUint()
		surface := msg.ReadObject()
		keys := msg.ReadArray()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.listening() {
			kb.Listener.Enter(serial, kb.client.surface(surface), keys)
		}
		return nil

	case 2:
		serial := msg.ReadUint()
		surface := msg.ReadObject()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.listening() {
			kb.Listener.Leave(serial, kb.client.surface(surface))
		}
		return nil

	case 3:
		serial := msg.ReadUint()
		time := msg.ReadUint()
		key := msg.ReadUint()
		state := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.listening() {
			kb.Listener.Key(serial, time, key, KeyboardKeyState(state))
		}
		return nil

	case 4:
		serial := msg.ReadUint()
		depressed := msg.ReadUint()
		latched := msg.ReadUint()
		locked := msg.ReadUint()
		group := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.listening() {
			kb.Listener.Modifiers(serial, depressed, latched, locked, group)
		}
		return nil

	case 5:
		rate := msg.ReadInt()
		delay := msg.ReadInt()
		if err := msg.Err(); err != nil {
			return err
		}
		if kb.listening() {
			kb.Listener.RepeatInfo(rate, delay)
		}
		return nil

	default:
		return kb.unknownOp(msg.Op())
	}
}

// Release destroys the keyboard. Before version 3 there is no release
// request and the keyboard is only forgotten locally.
func (kb *Keyboard) Release() error {
	if kb.version < 3 {
		kb.forget()
		return nil
	}
	return kb.destroy("release", 0)
}
