package bin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	data := Bytes(int32(-2))
	assert.Equal(t, int32(-2), Value[int32](data[:]))
	assert.Equal(t, uint32(0xfffffffe), Value[uint32](data[:]))

	data = Bytes(uint32(0x01020304))
	assert.Equal(t, uint32(0x01020304), Order.Uint32(data[:]))
}

func TestPad(t *testing.T) {
	assert.Equal(t, uint32(0), Pad(0))
	assert.Equal(t, uint32(3), Pad(1))
	assert.Equal(t, uint32(2), Pad(6))
	assert.Equal(t, uint32(0), Pad(8))
}
