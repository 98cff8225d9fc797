package wire

import (
	"errors"
	"fmt"
)

// ErrWouldBlock is returned when a socket operation could not proceed
// without blocking.
var ErrWouldBlock = errors.New("operation would block")

// UnknownOpError is returned by Object.Dispatch if it is given a
// message with an invalid opcode.
type UnknownOpError struct {
	Interface string
	Type      string
	Op        uint16
}

func (err UnknownOpError) Error() string {
	return fmt.Sprintf("unknown %v opcode for %v: %v", err.Type, err.Interface, err.Op)
}

// UnknownSenderIDError is returned by an attempt to dispatch an
// incoming message that indicates a method call on an object that
// isn't known locally.
type UnknownSenderIDError struct {
	Msg *MessageBuffer
}

func (err UnknownSenderIDError) Error() string {
	return fmt.Sprintf("unknown sender object ID: %v", err.Msg.Sender())
}

// MessageSizeError is returned when a message header announces a size
// that cannot be valid.
type MessageSizeError struct {
	Sender uint32
	Size   uint32
}

func (err MessageSizeError) Error() string {
	return fmt.Sprintf("invalid message size %v from object %v", err.Size, err.Sender)
}
