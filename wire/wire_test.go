package wire

import (
	"io"
	"os"
	"testing"

	"deedles.dev/wlsys/internal/bin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(t *testing.T) (*Conn, *Conn) {
	t.Helper()

	a, b, err := Pair()
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return a, b
}

func receive(t *testing.T, c *Conn) *MessageBuffer {
	t.Helper()

	for {
		msg, err := c.Next()
		require.NoError(t, err)
		if msg != nil {
			return msg
		}

		n, err := c.Fill()
		require.NoError(t, err)
		require.NotZero(t, n, "no data available")
	}
}

func TestRoundTrip(t *testing.T) {
	a, b := pair(t)

	mb := NewMessage(3, 7)
	mb.WriteUint(42)
	mb.WriteInt(-5)
	mb.WriteString("wl_compositor")
	mb.WriteFixed(FixedFloat(1.5))
	mb.WriteArray([]byte{1, 2, 3})
	mb.WriteObject(0)
	require.NoError(t, mb.Build(a))
	require.True(t, a.Pending())
	require.NoError(t, a.Flush())
	assert.False(t, a.Pending())

	msg := receive(t, b)
	assert.Equal(t, uint32(3), msg.Sender())
	assert.Equal(t, uint16(7), msg.Op())
	assert.Equal(t, uint32(42), msg.ReadUint())
	assert.Equal(t, int32(-5), msg.ReadInt())
	assert.Equal(t, "wl_compositor", msg.ReadString())
	assert.Equal(t, 1.5, msg.ReadFixed().Float())
	assert.Equal(t, []byte{1, 2, 3}, msg.ReadArray())
	assert.Equal(t, uint32(0), msg.ReadObject())
	assert.NoError(t, msg.Err())
	assert.Zero(t, b.Buffered())
}

func TestFilePassing(t *testing.T) {
	a, b := pair(t)

	file, err := os.CreateTemp(t.TempDir(), "keymap")
	require.NoError(t, err)
	defer file.Close()
	_, err = file.WriteString("xkb_keymap {}")
	require.NoError(t, err)

	mb := NewMessage(9, 0)
	mb.WriteUint(1)
	mb.WriteFile(file)
	mb.WriteUint(13)
	require.NoError(t, mb.Build(a))
	require.NoError(t, a.Flush())

	msg := receive(t, b)
	assert.Equal(t, uint32(1), msg.ReadUint())
	got := msg.ReadFile()
	require.NotNil(t, got)
	defer got.Close()
	assert.Equal(t, uint32(13), msg.ReadUint())
	require.NoError(t, msg.Err())

	data := make([]byte, 13)
	_, err = got.ReadAt(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "xkb_keymap {}", string(data))
}

func TestPartialMessage(t *testing.T) {
	a, b := pair(t)

	mb := NewMessage(1, 0)
	mb.WriteString("a somewhat longer string argument")
	require.NoError(t, mb.Build(a))

	full := a.out.Bytes()
	half := len(full) / 2
	b.in = append(b.in, full[:half]...)

	msg, err := b.Next()
	require.NoError(t, err)
	assert.Nil(t, msg)

	b.in = append(b.in, full[half:]...)
	msg, err = b.Next()
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "a somewhat longer string argument", msg.ReadString())
}

func TestInvalidSize(t *testing.T) {
	_, b := pair(t)

	header := bin.Bytes(uint32(1))
	so := bin.Bytes(uint32(4 << 16))
	b.in = append(b.in, header[:]...)
	b.in = append(b.in, so[:]...)

	_, err := b.Next()
	var sizeErr MessageSizeError
	assert.ErrorAs(t, err, &sizeErr)
}

func TestTruncatedArgs(t *testing.T) {
	a, b := pair(t)

	mb := NewMessage(1, 0)
	mb.WriteUint(1)
	require.NoError(t, mb.Build(a))
	require.NoError(t, a.Flush())

	msg := receive(t, b)
	msg.ReadUint()
	msg.ReadUint()
	assert.ErrorIs(t, msg.Err(), io.ErrUnexpectedEOF)
}

func TestHangup(t *testing.T) {
	a, b := pair(t)
	require.NoError(t, a.Close())

	_, err := b.Fill()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFixed(t *testing.T) {
	tests := []struct {
		in    float64
		int   int
		float float64
	}{
		{0, 0, 0},
		{1, 1, 1},
		{10.25, 10, 10.25},
		{-3.5, -3, -3.5},
	}

	for _, test := range tests {
		f := FixedFloat(test.in)
		assert.Equal(t, test.int, f.Int(), "%v", test.in)
		assert.Equal(t, test.float, f.Float(), "%v", test.in)
	}

	assert.Equal(t, 7.0, FixedInt(7).Float())
	assert.Equal(t, "2.5", FixedFloat(2.5).String())
}
