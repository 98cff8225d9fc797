package wl

import (
	"errors"
	"fmt"
	"os"

	"deedles.dev/wlsys/internal/debug"
	"deedles.dev/wlsys/wire"
)

// ErrDeadObject is returned when a request is made on an object that
// has been destroyed, either locally or by the server.
var ErrDeadObject = errors.New("object is no longer alive")

// Interface is a global interface as announced by the registry.
type Interface struct {
	Name    string
	Version uint32
}

// Is returns true if i is an announcement of the named interface at
// the given version or later.
func (i Interface) Is(name string, version uint32) bool {
	return (i.Name == name) && (i.Version >= version)
}

// descriptor describes one protocol interface implemented by this
// package.
type descriptor struct {
	name    string
	version uint32
	events  []string
}

// object is an object ID argument. Zero means null.
type object uint32

func ref[T interface {
	comparable
	wire.Object
}](obj T) object {
	var zero T
	if obj == zero {
		return 0
	}
	return object(obj.ID())
}

// proxy is the client-side state shared by every protocol object.
type proxy struct {
	client  *Client
	desc    *descriptor
	id      uint32
	version uint32
	dead    bool
}

func (p *proxy) ID() uint32 {
	return p.id
}

func (p *proxy) SetID(id uint32) {
	p.id = id
}

// Delete marks the object as dead. It is called when the server
// releases the object's ID.
func (p *proxy) Delete() {
	p.dead = true
}

// Version is the protocol version that the object was created with.
func (p *proxy) Version() uint32 {
	return p.version
}

// Alive reports whether requests may still be made on the object.
func (p *proxy) Alive() bool {
	return (p.client != nil) && !p.dead
}

func (p *proxy) String() string {
	if p.desc == nil {
		return fmt.Sprintf("unknown@%v", p.id)
	}
	return fmt.Sprintf("%v@%v", p.desc.name, p.id)
}

func (p *proxy) MethodName(op uint16) string {
	if (p.desc == nil) || (int(op) >= len(p.desc.events)) {
		return fmt.Sprintf("event%v", op)
	}
	return p.desc.events[op]
}

func (p *proxy) unknownOp(op uint16) error {
	name := "unknown"
	if p.desc != nil {
		name = p.desc.name
	}
	return wire.UnknownOpError{Interface: name, Type: "event", Op: op}
}

// send encodes a request and queues it on the connection.
func (p *proxy) send(method string, op uint16, args ...any) error {
	if !p.Alive() {
		return fmt.Errorf("%v.%v: %w", p, method, ErrDeadObject)
	}

	mb := wire.NewMessage(p.id, op)
	mb.Method = method
	mb.Object = p.String()
	for _, arg := range args {
		switch arg := arg.(type) {
		case uint32:
			mb.WriteUint(arg)
		case int32:
			mb.WriteInt(arg)
		case object:
			mb.WriteObject(uint32(arg))
		case wire.Fixed:
			mb.WriteFixed(arg)
		case string:
			mb.WriteString(arg)
		case []byte:
			mb.WriteArray(arg)
		case *os.File:
			mb.WriteFile(arg)
		case wire.NewID:
			mb.WriteNewID(arg)
		default:
			panic(fmt.Errorf("unsupported request argument type: %T", arg))
		}
	}

	debug.Printf(" -> %v", mb)
	return mb.Build(p.client.conn)
}

// destroy sends a destructor request and marks the object dead. The
// ID stays reserved until the server confirms it with delete_id.
func (p *proxy) destroy(method string, op uint16) error {
	err := p.send(method, op)
	p.dead = true
	return err
}

// forget marks an object with no destructor request as dead. Its ID
// is released immediately.
func (p *proxy) forget() {
	if p.dead || (p.client == nil) {
		return
	}
	p.client.objects.Delete(p.id)
}
