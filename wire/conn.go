package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"deedles.dev/wlsys/internal/bin"
	"github.com/adrg/xdg"
	"golang.org/x/sys/unix"
)

const (
	readSize = 4096

	// maxFDs is the most file descriptors libwayland will put in a
	// single control message.
	maxFDs = 28
)

// SocketPath determines the path to the Wayland Unix domain socket
// based on the contents of the $WAYLAND_DISPLAY environment variable.
// It does not attempt to determine if the value corresponds to an
// actual socket.
func SocketPath() string {
	v, ok := os.LookupEnv("WAYLAND_DISPLAY")
	if !ok {
		v = "wayland-0"
	}
	if filepath.IsAbs(v) {
		return v
	}

	return filepath.Join(xdg.RuntimeDir, v)
}

// Conn represents a low-level Wayland connection. All of its
// operations are non-blocking. Incoming bytes are buffered until a
// complete message is available and outgoing messages are buffered
// until Flush is called.
type Conn struct {
	conn *net.UnixConn
	raw  syscall.RawConn

	in  []byte
	fds []int

	out    bytes.Buffer
	outfds []int
}

// NewConn creates a new Conn that wraps c. After this is called, use
// the provided Close method to close c instead of calling its own
// Close method.
func NewConn(c *net.UnixConn) (*Conn, error) {
	raw, err := c.SyscallConn()
	if err != nil {
		return nil, fmt.Errorf("get raw connection: %w", err)
	}

	return &Conn{
		conn: c,
		raw:  raw,
	}, nil
}

// Dial opens a connection to the Wayland socket based on the current
// environment. It follows the procedure outlined at
// https://wayland-book.com/protocol-design/wire-protocol.html#transports
// If path is not empty, it is used instead of $WAYLAND_DISPLAY.
func Dial(path string) (*Conn, error) {
	if v, ok := os.LookupEnv("WAYLAND_SOCKET"); ok && (path == "") {
		fd, err := strconv.ParseInt(v, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("parse WAYLAND_SOCKET fd: %w", err)
		}
		file := os.NewFile(uintptr(fd), "WAYLAND_SOCKET")
		defer file.Close()

		c, err := net.FileConn(file)
		if err != nil {
			return nil, fmt.Errorf("open WAYLAND_SOCKET connection: %w", err)
		}
		uc, ok := c.(*net.UnixConn)
		if !ok {
			c.Close()
			return nil, errors.New("WAYLAND_SOCKET is not a Unix socket")
		}
		return NewConn(uc)
	}

	if path == "" {
		path = SocketPath()
	}
	s, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, err
	}
	return NewConn(s)
}

// Close closes the underlying connection and any file descriptors
// that were received but never claimed by a message.
func (c *Conn) Close() error {
	for _, fd := range c.fds {
		unix.Close(fd)
	}
	c.fds = nil
	for _, fd := range c.outfds {
		unix.Close(fd)
	}
	c.outfds = nil

	return c.conn.Close()
}

// Fd returns the socket's file descriptor for use with poll. It is
// only valid until Close is called.
func (c *Conn) Fd() int {
	var sock int
	c.raw.Control(func(fd uintptr) { sock = int(fd) })
	return sock
}

// Fill reads whatever data is currently available on the socket
// without blocking. It returns the number of bytes read, which is
// zero if nothing was available. io.EOF is returned if the other end
// has hung up.
func (c *Conn) Fill() (int, error) {
	buf := make([]byte, readSize)
	oob := make([]byte, unix.CmsgSpace(maxFDs*4))

	var n, oobn int
	var rerr error
	err := c.raw.Read(func(fd uintptr) bool {
		n, oobn, _, _, rerr = unix.Recvmsg(int(fd), buf, oob, unix.MSG_DONTWAIT|unix.MSG_CMSG_CLOEXEC)
		return true
	})
	if err != nil {
		return 0, err
	}
	if rerr != nil {
		if errors.Is(rerr, unix.EAGAIN) || errors.Is(rerr, unix.EINTR) {
			return 0, nil
		}
		return 0, rerr
	}

	if oobn > 0 {
		err := c.readFDs(oob[:oobn])
		if err != nil {
			return n, err
		}
	}
	if n == 0 {
		return 0, io.EOF
	}

	c.in = append(c.in, buf[:n]...)
	return n, nil
}

func (c *Conn) readFDs(data []byte) error {
	cmsgs, err := unix.ParseSocketControlMessage(data)
	if err != nil {
		return fmt.Errorf("parse socket control messages: %w", err)
	}
	for _, cmsg := range cmsgs {
		fds, err := unix.ParseUnixRights(&cmsg)
		if err != nil {
			if errors.Is(err, unix.EINVAL) {
				continue
			}
			return fmt.Errorf("parse unix control message: %w", err)
		}
		c.fds = append(c.fds, fds...)
	}
	return nil
}

// Buffered returns the number of bytes that have been read but not
// yet consumed by Next.
func (c *Conn) Buffered() int {
	return len(c.in)
}

// Next removes the next complete message from the incoming buffer. It
// returns nil if no complete message is buffered.
func (c *Conn) Next() (*MessageBuffer, error) {
	if len(c.in) < HeaderSize {
		return nil, nil
	}

	sender := bin.Value[uint32](c.in[0:4])
	so := bin.Value[uint32](c.in[4:8])
	size := so >> 16
	if (size < HeaderSize) || (size%4 != 0) {
		return nil, MessageSizeError{Sender: sender, Size: size}
	}
	if uint32(len(c.in)) < size {
		return nil, nil
	}

	msg := MessageBuffer{
		conn:   c,
		sender: sender,
		op:     uint16(so & 0xFFFF),
		size:   uint16(size),
	}
	msg.data.Reset(bytes.Clone(c.in[HeaderSize:size]))

	n := copy(c.in, c.in[size:])
	c.in = c.in[:n]

	return &msg, nil
}

func (c *Conn) popFD() (int, bool) {
	if len(c.fds) == 0 {
		return -1, false
	}

	fd := c.fds[0]
	n := copy(c.fds, c.fds[1:])
	c.fds = c.fds[:n]
	return fd, true
}

// Pending reports whether there is outgoing data waiting for Flush.
func (c *Conn) Pending() bool {
	return c.out.Len() > 0
}

func (c *Conn) queue(data []byte, fds []int) {
	c.out.Write(data)
	c.outfds = append(c.outfds, fds...)
}

// Flush writes as much buffered outgoing data as the socket will
// accept. If the socket's buffer fills up, ErrWouldBlock is returned
// and the remaining data stays queued.
func (c *Conn) Flush() error {
	for c.out.Len() > 0 {
		var oob []byte
		if len(c.outfds) > 0 {
			oob = unix.UnixRights(c.outfds...)
		}

		var n int
		var werr error
		err := c.raw.Write(func(fd uintptr) bool {
			n, werr = unix.SendmsgN(int(fd), c.out.Bytes(), oob, nil, unix.MSG_DONTWAIT|unix.MSG_NOSIGNAL)
			return true
		})
		if err != nil {
			return err
		}
		if werr != nil {
			if errors.Is(werr, unix.EAGAIN) {
				return ErrWouldBlock
			}
			if errors.Is(werr, unix.EINTR) {
				continue
			}
			return werr
		}

		for _, fd := range c.outfds {
			unix.Close(fd)
		}
		c.outfds = c.outfds[:0]
		c.out.Next(n)
	}

	return nil
}

// Pair returns two connected Conns backed by a socketpair. It is
// mostly useful for testing.
func Pair() (*Conn, *Conn, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("socketpair: %w", err)
	}

	a, err := fdConn(fds[0])
	if err != nil {
		unix.Close(fds[1])
		return nil, nil, err
	}
	b, err := fdConn(fds[1])
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, b, nil
}

func fdConn(fd int) (*Conn, error) {
	file := os.NewFile(uintptr(fd), "socketpair")
	defer file.Close()

	c, err := net.FileConn(file)
	if err != nil {
		return nil, fmt.Errorf("open socketpair connection: %w", err)
	}
	uc, ok := c.(*net.UnixConn)
	if !ok {
		c.Close()
		return nil, errors.New("socketpair is not a Unix socket")
	}
	return NewConn(uc)
}
