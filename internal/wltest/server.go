// Package wltest provides a fake Wayland compositor for tests. It runs
// on one end of a socketpair, answers wl_display.sync, announces a
// configurable set of globals, and records every request it receives.
package wltest

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"testing"

	"deedles.dev/wlsys/internal/xslices"
	"deedles.dev/wlsys/wire"
	"golang.org/x/sys/unix"
)

// ID is an object ID argument for Send.
type ID uint32

// Global is a global announced by the fake compositor.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32

	// OnBind, if not nil, is called when a client binds the global.
	// send emits events from the newly bound object.
	OnBind func(send func(op uint16, args ...any))
}

// Request is a request received from the client.
type Request struct {
	Object    uint32
	Interface string
	Method    string
	Args      []any
}

// Server is the fake compositor.
type Server struct {
	t    testing.TB
	conn *wire.Conn
	done chan struct{}
	wg   sync.WaitGroup

	m        sync.Mutex
	objects  map[uint32]string
	globals  []Global
	bound    map[string][]uint32
	requests []Request
	frames   []uint32
	files    []*os.File
	serial   uint32
	err      error
}

// New starts a fake compositor announcing globals and returns it along
// with the client's end of the connection.
func New(t testing.TB, globals ...Global) (*Server, *wire.Conn) {
	t.Helper()

	client, server, err := wire.Pair()
	if err != nil {
		t.Fatalf("create socketpair: %v", err)
	}

	s := Server{
		t:       t,
		conn:    server,
		done:    make(chan struct{}),
		objects: map[uint32]string{1: "wl_display"},
		globals: globals,
		bound:   make(map[string][]uint32),
	}

	s.wg.Add(1)
	go s.serve()

	t.Cleanup(func() {
		close(s.done)
		s.wg.Wait()
		s.conn.Close()
		for _, f := range s.files {
			f.Close()
		}
		if s.err != nil {
			t.Errorf("fake compositor: %v", s.err)
		}
	})

	return &s, client
}

func (s *Server) serve() {
	defer s.wg.Done()

	fds := []unix.PollFd{{Fd: int32(s.conn.Fd()), Events: unix.POLLIN}}
	for {
		select {
		case <-s.done:
			return
		default:
		}

		fds[0].Revents = 0
		_, err := unix.Poll(fds, 10)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			s.fail(fmt.Errorf("poll: %w", err))
			return
		}
		if fds[0].Revents == 0 {
			continue
		}

		if !s.receive() {
			return
		}
	}
}

func (s *Server) fail(err error) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.err == nil {
		s.err = err
	}
}

// receive reads and handles everything available. It returns false
// once the client has hung up.
func (s *Server) receive() bool {
	s.m.Lock()
	defer s.m.Unlock()

	_, err := s.conn.Fill()
	if err != nil {
		// The client closing its end is the normal way for a test
		// to finish.
		return false
	}

	for {
		msg, err := s.conn.Next()
		if err != nil {
			s.err = err
			return false
		}
		if msg == nil {
			break
		}

		err = s.handle(msg)
		if err != nil {
			s.err = err
			return false
		}
	}

	err = s.flush()
	if err != nil {
		if !hungUp(err) {
			s.err = err
		}
		return false
	}
	return true
}

// hungUp reports whether err means that the client has closed its end
// of the connection.
func hungUp(err error) bool {
	return errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNRESET)
}

func (s *Server) handle(msg *wire.MessageBuffer) error {
	iface, ok := s.objects[msg.Sender()]
	if !ok {
		// Requests on objects that were already destroyed.
		return nil
	}
	r, ok := requests[iface][msg.Op()]
	if !ok {
		return fmt.Errorf("unexpected request %v on %v@%v", msg.Op(), iface, msg.Sender())
	}

	rec := Request{Object: msg.Sender(), Interface: iface, Method: r.name}
	for _, kind := range r.args {
		switch kind {
		case "u", "o":
			rec.Args = append(rec.Args, msg.ReadUint())
		case "i":
			rec.Args = append(rec.Args, msg.ReadInt())
		case "f":
			rec.Args = append(rec.Args, msg.ReadFixed())
		case "s":
			rec.Args = append(rec.Args, msg.ReadString())
		case "a":
			rec.Args = append(rec.Args, msg.ReadArray())
		case "h":
			f := msg.ReadFile()
			if f != nil {
				s.files = append(s.files, f)
			}
			rec.Args = append(rec.Args, f)
		case "N":
			id := msg.ReadNewID()
			s.objects[id.ID] = id.Interface
			rec.Args = append(rec.Args, id)
		default:
			id := msg.ReadUint()
			s.objects[id] = kind[2:]
			rec.Args = append(rec.Args, id)
		}
	}
	if err := msg.Err(); err != nil {
		return fmt.Errorf("decode %v.%v: %w", iface, r.name, err)
	}
	s.requests = append(s.requests, rec)

	switch {
	case r.destructor:
		delete(s.objects, msg.Sender())
		s.send(1, 1, msg.Sender())

	case (iface == "wl_display") && (r.name == "sync"):
		id := rec.Args[0].(uint32)
		s.serial++
		s.send(id, 0, s.serial)
		delete(s.objects, id)
		s.send(1, 1, id)

	case (iface == "wl_display") && (r.name == "get_registry"):
		id := rec.Args[0].(uint32)
		for _, g := range s.globals {
			s.send(id, 0, g.Name, g.Interface, g.Version)
		}

	case (iface == "wl_registry") && (r.name == "bind"):
		name := rec.Args[0].(uint32)
		id := rec.Args[1].(wire.NewID)
		s.bound[id.Interface] = append(s.bound[id.Interface], id.ID)
		for _, g := range s.globals {
			if (g.Name == name) && (g.OnBind != nil) {
				g.OnBind(func(op uint16, args ...any) { s.send(id.ID, op, args...) })
			}
		}

	case (iface == "wl_surface") && (r.name == "frame"):
		s.frames = append(s.frames, rec.Args[0].(uint32))
	}

	return nil
}

// send queues an event. s.m must be held.
func (s *Server) send(sender uint32, op uint16, args ...any) {
	mb := wire.NewMessage(sender, op)
	for _, arg := range args {
		switch arg := arg.(type) {
		case uint32:
			mb.WriteUint(arg)
		case int32:
			mb.WriteInt(arg)
		case ID:
			mb.WriteObject(uint32(arg))
		case wire.Fixed:
			mb.WriteFixed(arg)
		case string:
			mb.WriteString(arg)
		case []byte:
			mb.WriteArray(arg)
		case *os.File:
			mb.WriteFile(arg)
		default:
			panic(fmt.Errorf("unsupported event argument type: %T", arg))
		}
	}

	err := mb.Build(s.conn)
	if (err != nil) && !hungUp(err) && (s.err == nil) {
		s.err = err
	}
}

func (s *Server) flush() error {
	for {
		err := s.conn.Flush()
		if !errors.Is(err, wire.ErrWouldBlock) {
			return err
		}

		fds := []unix.PollFd{{Fd: int32(s.conn.Fd()), Events: unix.POLLOUT}}
		_, err = unix.Poll(fds, -1)
		if (err != nil) && !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

// Send sends an event from the object with the given ID and flushes it
// immediately.
func (s *Server) Send(sender uint32, op uint16, args ...any) {
	s.t.Helper()

	s.m.Lock()
	defer s.m.Unlock()

	s.send(sender, op, args...)
	err := s.flush()
	if (err != nil) && !hungUp(err) {
		s.t.Fatalf("send event: %v", err)
	}
}

// Announce adds a global and announces it to every bound registry.
func (s *Server) Announce(g Global) {
	s.m.Lock()
	s.globals = append(s.globals, g)
	s.m.Unlock()

	for _, id := range s.Objects("wl_registry") {
		s.Send(id, 0, g.Name, g.Interface, g.Version)
	}
}

// Remove withdraws the global with the given name.
func (s *Server) Remove(name uint32) {
	s.m.Lock()
	for i, g := range s.globals {
		if g.Name == name {
			s.globals = append(s.globals[:i], s.globals[i+1:]...)
			break
		}
	}
	s.m.Unlock()

	for _, id := range s.Objects("wl_registry") {
		s.Send(id, 1, name)
	}
}

// Bound returns the IDs the client has bound the given interface to.
func (s *Server) Bound(iface string) []uint32 {
	s.m.Lock()
	defer s.m.Unlock()

	return append([]uint32(nil), s.bound[iface]...)
}

// Objects returns the IDs of live objects of the given interface in
// ascending order.
func (s *Server) Objects(iface string) []uint32 {
	s.m.Lock()
	defer s.m.Unlock()

	var ids []uint32
	for id, name := range s.objects {
		if name == iface {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Requests returns every recorded request with the given interface and
// method, in the order they arrived.
func (s *Server) Requests(iface, method string) []Request {
	s.m.Lock()
	defer s.m.Unlock()

	return xslices.Filter(s.requests, func(r Request) bool {
		return (r.Interface == iface) && (r.Method == method)
	})
}

// Methods returns the method names of every request made on the object
// with the given ID, in order.
func (s *Server) Methods(id uint32) []string {
	s.m.Lock()
	defer s.m.Unlock()

	var methods []string
	for _, r := range s.requests {
		if r.Object == id {
			methods = append(methods, r.Method)
		}
	}
	return methods
}

// FireFrames sends done to every outstanding frame callback and
// returns how many there were.
func (s *Server) FireFrames(time uint32) int {
	s.t.Helper()

	s.m.Lock()
	defer s.m.Unlock()

	frames := s.frames
	s.frames = nil
	for _, id := range frames {
		if _, ok := s.objects[id]; !ok {
			continue
		}
		s.send(id, 0, time)
		delete(s.objects, id)
		s.send(1, 1, id)
	}
	err := s.flush()
	if (err != nil) && !hungUp(err) {
		s.t.Fatalf("send frame events: %v", err)
	}
	return len(frames)
}

// Err returns the first error the fake compositor ran into. A client
// hanging up is not an error.
func (s *Server) Err() error {
	s.m.Lock()
	defer s.m.Unlock()

	return s.err
}

// PendingFrames returns the number of outstanding frame callbacks.
func (s *Server) PendingFrames() int {
	s.m.Lock()
	defer s.m.Unlock()

	return len(s.frames)
}
