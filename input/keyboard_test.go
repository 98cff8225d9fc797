package input_test

import (
	"os"
	"testing"

	wl "deedles.dev/wlsys/client"
	"deedles.dev/wlsys/input"
	"deedles.dev/wlsys/internal/wltest"
	"deedles.dev/wlsys/key"
	"deedles.dev/wlsys/shm"
	"deedles.dev/wlsys/xkb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keymapFile(t *testing.T, text string) (*os.File, uint32) {
	t.Helper()

	file, err := shm.Create("keymap")
	require.NoError(t, err)
	data := append([]byte(text), 0)
	_, err = file.Write(data)
	require.NoError(t, err)
	return file, uint32(len(data))
}

func closed(f *os.File) bool {
	_, err := f.Stat()
	return err != nil
}

func newKeyboard(t *testing.T, keymaps map[string]wltest.Keymap) (*input.Keyboard, *wltest.Compiler) {
	t.Helper()

	c := wltest.NewCompiler(keymaps)
	kb := input.NewKeyboard(c)
	t.Cleanup(kb.Close)
	return kb, c
}

func TestKeymap(t *testing.T) {
	kb, c := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap})

	file, size := keymapFile(t, "us")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))
	assert.True(t, closed(file))
	assert.True(t, kb.Ready())
	assert.Equal(t, []string{"us"}, c.Compiled())
	assert.Equal(t, 2, c.Open())

	kb.Close()
	assert.Equal(t, 0, c.Open())
}

func TestKeymapUnsupportedFormat(t *testing.T) {
	kb, c := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap})

	file, size := keymapFile(t, "us")
	err := kb.Keymap(wl.KeyboardKeymapFormatNoKeymap, file, size)
	assert.ErrorIs(t, err, input.ErrUnsupportedFormat)
	assert.True(t, closed(file))
	assert.False(t, kb.Ready())
	assert.Empty(t, c.Compiled())
}

func TestKeymapCompileFailure(t *testing.T) {
	kb, c := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap})

	file, size := keymapFile(t, "us")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))

	file, size = keymapFile(t, "garbage")
	assert.Error(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))
	assert.True(t, closed(file))
	assert.False(t, kb.Ready())
	assert.Equal(t, 0, c.Open())

	_, err := kb.Key(30)
	assert.ErrorIs(t, err, input.ErrNoKeymap)
}

func TestKeyBeforeKeymap(t *testing.T) {
	kb, _ := newKeyboard(t, nil)

	_, err := kb.Key(30)
	assert.ErrorIs(t, err, input.ErrNoKeymap)
	assert.ErrorIs(t, kb.Modifiers(1, 0, 0, 0), input.ErrNoKeymap)
	assert.Equal(t, key.Modifiers(0), kb.ModifierKeys())
}

func TestKey(t *testing.T) {
	kb, _ := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap})
	file, size := keymapFile(t, "us")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))

	tests := []struct {
		scancode uint32
		code     key.Code
		text     string
	}{
		{30, key.A, "a"},
		{2, key.Num1, "1"},
		{28, key.Enter, ""},
		{1, key.Esc, ""},
		{57, key.Space, " "},
		{59, key.F1, ""},
		{42, key.LeftShift, ""},
		{125, key.OS, ""},
		{200, key.Unknown, ""},
	}
	for _, test := range tests {
		k, err := kb.Key(test.scancode)
		require.NoError(t, err)
		assert.Equal(t, test.code, k.Code, "scancode %v", test.scancode)
		assert.Equal(t, test.text, k.Text, "scancode %v", test.scancode)
	}

	require.NoError(t, kb.Modifiers(1, 0, 0, 0))
	k, err := kb.Key(30)
	require.NoError(t, err)
	assert.Equal(t, key.A, k.Code)
	assert.Equal(t, "A", k.Text)
}

func TestModifierKeys(t *testing.T) {
	kb, _ := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap})
	file, size := keymapFile(t, "us")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))

	require.NoError(t, kb.Modifiers(1<<0|1<<2, 1<<6, 1<<1, 0))
	mods := kb.ModifierKeys()
	assert.Equal(t, key.ModLeftShift|key.ModLeftControl|key.ModRightControl|key.ModOS, mods)
	assert.False(t, mods.Has(key.ModRightShift))

	// Locked modifiers are not reported.
	require.NoError(t, kb.Modifiers(0, 0, 1<<3, 0))
	assert.Equal(t, key.Modifiers(0), kb.ModifierKeys())

	require.NoError(t, kb.Modifiers(0, 1<<3, 0, 0))
	assert.Equal(t, key.ModLeftAlt|key.ModRightAlt, kb.ModifierKeys())
}

func TestKeymapReplacement(t *testing.T) {
	swapped := wltest.Keymap{
		Keys: wltest.USKeymap.Keys,
		Mods: map[string]uint32{
			xkb.ModNameShift: 4,
			xkb.ModNameCtrl:  5,
		},
	}
	kb, c := newKeyboard(t, map[string]wltest.Keymap{"us": wltest.USKeymap, "swapped": swapped})

	file, size := keymapFile(t, "us")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))
	require.NoError(t, kb.Modifiers(1<<0, 0, 0, 0))
	assert.Equal(t, key.ModLeftShift, kb.ModifierKeys())

	file, size = keymapFile(t, "swapped")
	require.NoError(t, kb.Keymap(wl.KeyboardKeymapFormatXkbV1, file, size))
	assert.Equal(t, 2, c.Open())
	assert.Equal(t, key.Modifiers(0), kb.ModifierKeys())

	require.NoError(t, kb.Modifiers(1<<0|1<<3|1<<6, 0, 0, 0))
	assert.Equal(t, key.Modifiers(0), kb.ModifierKeys())

	require.NoError(t, kb.Modifiers(1<<4|1<<5, 0, 0, 0))
	assert.Equal(t, key.ModLeftShift|key.ModLeftControl|key.ModRightControl, kb.ModifierKeys())
}

func TestRepeatInfo(t *testing.T) {
	kb, _ := newKeyboard(t, nil)
	kb.SetRepeatInfo(25, 600)
	rate, delay := kb.RepeatInfo()
	assert.Equal(t, int32(25), rate)
	assert.Equal(t, int32(600), delay)
}
