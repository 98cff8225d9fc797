package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtons(t *testing.T) {
	var bs Buttons
	bs = bs.With(ButtonLeft, true).With(ButtonMiddle, true)
	assert.True(t, bs.Has(ButtonLeft))
	assert.True(t, bs.Has(ButtonMiddle))
	assert.False(t, bs.Has(ButtonRight))

	bs = bs.With(ButtonLeft, false)
	assert.False(t, bs.Has(ButtonLeft))

	assert.Zero(t, Button(0x200).Mask())
	assert.False(t, bs.Has(Button(0x200)))
	assert.Equal(t, "middle", ButtonMiddle.String())
}
