package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"deedles.dev/wlsys/internal/bin"
)

// MessageBuffer holds message data that has been read from the socket
// but not yet decoded.
type MessageBuffer struct {
	conn   *Conn
	sender uint32
	op     uint16
	size   uint16
	data   bytes.Reader
	err    error
	args   []any
}

// Sender is the object ID of the sender of the message.
func (r *MessageBuffer) Sender() uint32 {
	return r.sender
}

// Op is the opcode of the message.
func (r *MessageBuffer) Op() uint16 {
	return r.op
}

// Size is the total size of the message, including the 8 byte header.
func (r *MessageBuffer) Size() uint16 {
	return r.size
}

// Err returns the first error that occurred while decoding arguments.
func (r *MessageBuffer) Err() error {
	if errors.Is(r.err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return r.err
}

func (r *MessageBuffer) read4() (data [4]byte, ok bool) {
	if r.err != nil {
		return data, false
	}

	_, r.err = io.ReadFull(&r.data, data[:])
	return data, r.err == nil
}

func (r *MessageBuffer) ReadInt() int32 {
	data, ok := r.read4()
	if !ok {
		return 0
	}

	v := bin.Value[int32](data[:])
	r.args = append(r.args, v)
	return v
}

func (r *MessageBuffer) ReadUint() uint32 {
	data, ok := r.read4()
	if !ok {
		return 0
	}

	v := bin.Value[uint32](data[:])
	r.args = append(r.args, v)
	return v
}

// ReadObject reads an object ID argument. A zero ID means null.
func (r *MessageBuffer) ReadObject() uint32 {
	return r.ReadUint()
}

func (r *MessageBuffer) ReadNewID() NewID {
	return NewID{
		Interface: r.ReadString(),
		Version:   r.ReadUint(),
		ID:        r.ReadUint(),
	}
}

func (r *MessageBuffer) ReadFixed() Fixed {
	data, ok := r.read4()
	if !ok {
		return 0
	}

	v := bin.Value[Fixed](data[:])
	r.args = append(r.args, v)
	return v
}

func (r *MessageBuffer) ReadString() string {
	data, ok := r.read4()
	if !ok {
		return ""
	}
	length := bin.Value[uint32](data[:])
	if length == 0 {
		r.args = append(r.args, "")
		return ""
	}

	buf := make([]byte, length+bin.Pad(length))
	_, r.err = io.ReadFull(&r.data, buf)
	if r.err != nil {
		return ""
	}
	if buf[length-1] != 0 {
		r.err = errors.New("string is not null-terminated")
		return ""
	}

	v := string(buf[:length-1])
	r.args = append(r.args, v)
	return v
}

func (r *MessageBuffer) ReadArray() []byte {
	data, ok := r.read4()
	if !ok {
		return nil
	}
	length := bin.Value[uint32](data[:])

	buf := make([]byte, length+bin.Pad(length))
	_, r.err = io.ReadFull(&r.data, buf)
	if r.err != nil {
		return nil
	}

	r.args = append(r.args, buf[:length])
	return buf[:length]
}

// ReadUintArray reads an array argument as a list of 32-bit values,
// such as the states of an xdg_toplevel.configure event.
func (r *MessageBuffer) ReadUintArray() []uint32 {
	data := r.ReadArray()
	if (r.err == nil) && (len(data)%4 != 0) {
		r.err = fmt.Errorf("array length %v is not a multiple of 4", len(data))
		return nil
	}

	v := make([]uint32, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		v = append(v, bin.Value[uint32](data[i:i+4]))
	}
	return v
}

// ReadFile claims the next file descriptor that arrived on the
// connection. The caller owns the returned file.
func (r *MessageBuffer) ReadFile() *os.File {
	if r.err != nil {
		return nil
	}

	fd, ok := r.conn.popFD()
	if !ok {
		r.err = errors.New("no more file descriptors")
		return nil
	}

	f := os.NewFile(uintptr(fd), "")
	r.args = append(r.args, f)
	return f
}

// Debug formats the decoded message in the same style as
// libwayland's WAYLAND_DEBUG output.
func (r *MessageBuffer) Debug(sender Object) string {
	args := make([]string, 0, len(r.args))
	for _, arg := range r.args {
		switch arg := arg.(type) {
		case string:
			args = append(args, strconv.Quote(arg))
		case *os.File:
			args = append(args, fmt.Sprintf("fd %v", arg.Fd()))
		case []byte:
			args = append(args, fmt.Sprintf("array[%v]", len(arg)))
		default:
			args = append(args, fmt.Sprint(arg))
		}
	}

	method := sender.MethodName(r.op)
	return fmt.Sprintf("%v.%v(%v)", sender, method, strings.Join(args, ", "))
}
