package objstore

import (
	"testing"

	"deedles.dev/wlsys/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object struct {
	id      uint32
	deleted bool
}

func (obj *object) ID() uint32                             { return obj.id }
func (obj *object) SetID(id uint32)                        { obj.id = id }
func (obj *object) Delete()                                { obj.deleted = true }
func (obj *object) Dispatch(msg *wire.MessageBuffer) error { return nil }
func (obj *object) MethodName(op uint16) string            { return "" }

func TestAllocation(t *testing.T) {
	s := New(2)

	a, b := &object{}, &object{}
	s.Add(a)
	s.Add(b)
	assert.Equal(t, uint32(2), a.id)
	assert.Equal(t, uint32(3), b.id)
	assert.Same(t, b, s.Get(3))
	assert.Equal(t, []uint32{2, 3}, s.IDs())

	fixed := &object{id: 1}
	s.Add(fixed)
	assert.Same(t, fixed, s.Get(1))
	assert.Equal(t, 3, s.Len())
}

func TestDelete(t *testing.T) {
	s := New(1)

	a := &object{}
	s.Add(a)
	s.Delete(a.id)
	require.True(t, a.deleted)
	assert.Nil(t, s.Get(a.id))

	s.Delete(a.id)
	s.Delete(99)

	b := &object{}
	s.Add(b)
	assert.Equal(t, uint32(1), b.id, "freed ID should be reused")
	assert.False(t, b.deleted)
}
