package wl

import (
	"os"

	"deedles.dev/wlsys/wire"
)

var shmDescriptor = descriptor{
	name:    ShmInterface,
	version: 1,
	events:  []string{"format"},
}

var shmPoolDescriptor = descriptor{
	name:    "wl_shm_pool",
	version: 1,
}

var bufferDescriptor = descriptor{
	name:    "wl_buffer",
	version: 1,
	events:  []string{"release"},
}

type ShmFormat uint32

const (
	ShmFormatArgb8888 ShmFormat = 0
	ShmFormatXrgb8888 ShmFormat = 1
)

type ShmListener interface {
	Format(format ShmFormat)
}

type Shm struct {
	proxy
	Listener ShmListener
}

func (shm *Shm) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		format := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}
		if !shm.dead && (shm.Listener != nil) {
			shm.Listener.Format(ShmFormat(format))
		}
		return nil

	default:
		return shm.unknownOp(msg.Op())
	}
}

// CreatePool shares size bytes of file with the server. The caller
// keeps ownership of file.
func (shm *Shm) CreatePool(file *os.File, size int32) (*ShmPool, error) {
	var pool ShmPool
	shm.client.track(&pool, &pool.proxy, &shmPoolDescriptor, 1)
	err := shm.send("create_pool", 0, object(pool.id), file, size)
	if err != nil {
		pool.forget()
		return nil, err
	}
	return &pool, nil
}

// Release forgets the shm global. wl_shm has no destructor at the
// version used here.
func (shm *Shm) Release() {
	shm.forget()
}

type ShmPool struct {
	proxy
}

func (pool *ShmPool) Dispatch(msg *wire.MessageBuffer) error {
	return pool.unknownOp(msg.Op())
}

func (pool *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat) (*Buffer, error) {
	var buf Buffer
	pool.client.track(&buf, &buf.proxy, &bufferDescriptor, 1)
	err := pool.send("create_buffer", 0, object(buf.id), offset, width, height, stride, uint32(format))
	if err != nil {
		buf.forget()
		return nil, err
	}
	return &buf, nil
}

func (pool *ShmPool) Destroy() error {
	return pool.destroy("destroy", 1)
}

// Resize grows the pool. Pools can not shrink.
func (pool *ShmPool) Resize(size int32) error {
	return pool.send("resize", 2, size)
}

type BufferListener interface {
	Release()
}

type Buffer struct {
	proxy
	Listener BufferListener
}

func (buf *Buffer) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		if !buf.dead && (buf.Listener != nil) {
			buf.Listener.Release()
		}
		return nil

	default:
		return buf.unknownOp(msg.Op())
	}
}

func (buf *Buffer) Destroy() error {
	return buf.destroy("destroy", 0)
}
