// Package wire defines types helpful for dealing with the Wayland
// wire protocol: the message codec and a non-blocking connection that
// passes file descriptors alongside message data.
package wire

// HeaderSize is the size of the sender and size/opcode words that
// start every message.
const HeaderSize = 8

// NewID is the untyped new_id argument used by wl_registry.bind.
type NewID struct {
	Interface string
	Version   uint32
	ID        uint32
}

// Object represents a Wayland protocol object.
type Object interface {
	// ID returns the object's ID. It is zero until the object has been
	// added to an object store.
	ID() uint32
	SetID(id uint32)

	// Delete is called when the object's ID has been released and it
	// should no longer be used.
	Delete()

	// Dispatch performs the operation requested by the message in the
	// buffer.
	Dispatch(msg *MessageBuffer) error

	// MethodName returns the name of the incoming message with the
	// given opcode. It is used for debugging output.
	MethodName(op uint16) string
}
