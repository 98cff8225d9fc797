package wire

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"deedles.dev/wlsys/internal/bin"
	"golang.org/x/sys/unix"
)

// MessageBuilder is a message that is under construction.
type MessageBuilder struct {
	// Method is the name of the method being called. It is included
	// purely for debugging purposes.
	Method string

	// Object is the printable name of the sender, such as
	// "wl_surface@5". It is included purely for debugging purposes.
	Object string

	sender uint32
	op     uint16
	data   bytes.Buffer
	fds    []int
	args   []string
	err    error
}

func NewMessage(sender uint32, op uint16) *MessageBuilder {
	return &MessageBuilder{
		sender: sender,
		op:     op,
	}
}

func (mb *MessageBuilder) Sender() uint32 {
	return mb.sender
}

func (mb *MessageBuilder) Op() uint16 {
	return mb.op
}

func (mb *MessageBuilder) write4(data [4]byte) {
	mb.data.Write(data[:])
}

func (mb *MessageBuilder) WriteInt(v int32) {
	if mb.err != nil {
		return
	}

	mb.write4(bin.Bytes(v))
	mb.args = append(mb.args, strconv.FormatInt(int64(v), 10))
}

func (mb *MessageBuilder) WriteUint(v uint32) {
	if mb.err != nil {
		return
	}

	mb.write4(bin.Bytes(v))
	mb.args = append(mb.args, strconv.FormatUint(uint64(v), 10))
}

// WriteObject writes an object ID argument. A zero ID means null.
func (mb *MessageBuilder) WriteObject(id uint32) {
	if mb.err != nil {
		return
	}

	mb.write4(bin.Bytes(id))
	if id == 0 {
		mb.args = append(mb.args, "nil")
		return
	}
	mb.args = append(mb.args, fmt.Sprintf("@%v", id))
}

func (mb *MessageBuilder) WriteNewID(v NewID) {
	mb.WriteString(v.Interface)
	mb.WriteUint(v.Version)
	mb.WriteObject(v.ID)
}

func (mb *MessageBuilder) WriteFixed(v Fixed) {
	if mb.err != nil {
		return
	}

	mb.write4(bin.Bytes(v))
	mb.args = append(mb.args, v.String())
}

func (mb *MessageBuilder) WriteString(v string) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v) + 1)
	mb.write4(bin.Bytes(length))
	mb.data.WriteString(v)
	mb.data.WriteByte(0)
	for i := uint32(0); i < bin.Pad(length); i++ {
		mb.data.WriteByte(0)
	}
	mb.args = append(mb.args, strconv.Quote(v))
}

func (mb *MessageBuilder) WriteArray(v []byte) {
	if mb.err != nil {
		return
	}

	length := uint32(len(v))
	mb.write4(bin.Bytes(length))
	mb.data.Write(v)
	for i := uint32(0); i < bin.Pad(length); i++ {
		mb.data.WriteByte(0)
	}
	mb.args = append(mb.args, fmt.Sprintf("array[%v]", len(v)))
}

// WriteFile attaches a duplicate of v's file descriptor to the
// message. The caller keeps ownership of v.
func (mb *MessageBuilder) WriteFile(v *os.File) {
	if mb.err != nil {
		return
	}

	fd, err := unix.Dup(int(v.Fd()))
	if err != nil {
		mb.err = fmt.Errorf("dup file descriptor: %w", err)
		return
	}

	mb.fds = append(mb.fds, fd)
	mb.args = append(mb.args, fmt.Sprintf("fd %v", fd))
}

// Build encodes the message and queues it on c. It is sent by the
// next call to c.Flush. The MessageBuilder should not be used again
// after this method is called.
func (mb *MessageBuilder) Build(c *Conn) error {
	length := uint32(HeaderSize + mb.data.Len())
	if (mb.err == nil) && (length > 0xFFFF) {
		mb.err = MessageSizeError{Sender: mb.sender, Size: length}
	}
	if mb.err != nil {
		for _, fd := range mb.fds {
			unix.Close(fd)
		}
		mb.fds = nil
		return mb.err
	}

	msg := make([]byte, 0, length)
	sender := bin.Bytes(mb.sender)
	so := bin.Bytes((length << 16) | uint32(mb.op))
	msg = append(msg, sender[:]...)
	msg = append(msg, so[:]...)
	msg = append(msg, mb.data.Bytes()...)

	c.queue(msg, mb.fds)
	mb.fds = nil
	return nil
}

func (mb *MessageBuilder) String() string {
	obj := mb.Object
	if obj == "" {
		obj = fmt.Sprintf("@%v", mb.sender)
	}
	return fmt.Sprintf("%v.%v(%v)", obj, mb.Method, strings.Join(mb.args, ", "))
}
