// Package wl is a Wayland client. Each protocol object is a Go type
// with request methods and a Listener field that receives the events
// the server sends to it.
package wl

import (
	"errors"
	"fmt"

	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/internal/objstore"
	"deedles.dev/wlsys/wire"
	"golang.org/x/sys/unix"
)

// Client is one connection to a Wayland compositor along with every
// object that has been created on it. It is not safe for concurrent
// use. Nothing is read from or written to the socket except by the
// explicit ReadEvents, DispatchPending, Flush, and Roundtrip methods.
type Client struct {
	conn    *wire.Conn
	objects *objstore.Store
	display *Display
	err     error
}

// Dial connects to the compositor. See wire.Dial for the meaning of
// path.
func Dial(path string) (*Client, error) {
	c, err := wire.Dial(path)
	if err != nil {
		return nil, err
	}

	return NewClient(c), nil
}

// NewClient creates a Client that communicates over conn.
func NewClient(conn *wire.Conn) *Client {
	client := Client{
		conn:    conn,
		objects: objstore.New(1),
	}
	client.display = &Display{}
	client.track(client.display, &client.display.proxy, &displayDescriptor, 1)

	return &client
}

func (client *Client) track(obj wire.Object, p *proxy, desc *descriptor, version uint32) {
	p.client = client
	p.desc = desc
	p.version = min(version, desc.version)
	client.objects.Add(obj)
}

// Display returns the wl_display singleton.
func (client *Client) Display() *Display {
	return client.display
}

// Conn returns the underlying connection.
func (client *Client) Conn() *wire.Conn {
	return client.conn
}

// Close closes the connection. Objects created from client must not
// be used afterwards.
func (client *Client) Close() error {
	return client.conn.Close()
}

// Get returns the object with the given ID, or nil.
func (client *Client) Get(id uint32) wire.Object {
	return client.objects.Get(id)
}

// Objects returns the number of live objects.
func (client *Client) Objects() int {
	return client.objects.Len()
}

func (client *Client) surface(id uint32) *Surface {
	s, ok := client.objects.Get(id).(*Surface)
	if !ok {
		return nil
	}
	return s
}

// Err returns the fatal protocol error sent by the server, if any.
func (client *Client) Err() error {
	return client.err
}

// ReadEvents reads whatever is available on the socket without
// blocking. It returns the number of bytes read.
func (client *Client) ReadEvents() (int, error) {
	return client.conn.Fill()
}

// DispatchPending dispatches every complete message that has already
// been read from the socket. It returns the number of messages
// dispatched.
func (client *Client) DispatchPending() (int, error) {
	var n int
	for {
		msg, err := client.conn.Next()
		if err != nil {
			return n, err
		}
		if msg == nil {
			return n, client.err
		}
		n++

		err = client.dispatch(msg)
		if err != nil {
			var unknown wire.UnknownSenderIDError
			if errors.As(err, &unknown) {
				// Events can race with a destructor request.
				debug.Logger().Debug("dropped event", "err", err)
				continue
			}
			return n, err
		}
	}
}

func (client *Client) dispatch(msg *wire.MessageBuffer) error {
	obj := client.objects.Get(msg.Sender())
	if obj == nil {
		return wire.UnknownSenderIDError{Msg: msg}
	}

	err := obj.Dispatch(msg)
	debug.Printf("%v", msg.Debug(obj))
	if err != nil {
		return fmt.Errorf("dispatch %v: %w", msg.Debug(obj), err)
	}
	return nil
}

// Flush sends queued requests. It returns wire.ErrWouldBlock if the
// socket could not accept all of them.
func (client *Client) Flush() error {
	return client.conn.Flush()
}

// Poll waits up to timeout milliseconds for the socket to become ready
// for the given events. A negative timeout waits forever. It returns
// the ready events, which is zero on timeout or interruption.
func (client *Client) Poll(events int16, timeout int) (int16, error) {
	fds := []unix.PollFd{{Fd: int32(client.conn.Fd()), Events: events}}
	_, err := unix.Poll(fds, timeout)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, err
	}
	return fds[0].Revents, nil
}

// Roundtrip blocks until the server has processed every request sent
// so far and every event it sent in response has been dispatched.
func (client *Client) Roundtrip() error {
	var done bool
	cb, err := client.display.Sync()
	if err != nil {
		return err
	}
	cb.Listener = CallbackFunc(func(uint32) { done = true })

	for {
		events := int16(unix.POLLIN)
		err := client.Flush()
		if err != nil {
			if !errors.Is(err, wire.ErrWouldBlock) {
				return fmt.Errorf("flush: %w", err)
			}
			events |= unix.POLLOUT
		}

		_, err = client.DispatchPending()
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		revents, err := client.Poll(events, -1)
		if err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			_, err := client.ReadEvents()
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}
		}
	}
}
