package wl

import (
	"fmt"

	"deedles.dev/wlsys/wire"
)

var displayDescriptor = descriptor{
	name:    "wl_display",
	version: 1,
	events:  []string{"error", "delete_id"},
}

// ProtocolError is a fatal error reported by the server.
type ProtocolError struct {
	Object  uint32
	Code    uint32
	Message string
}

func (err ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %v on object %v: %v", err.Code, err.Object, err.Message)
}

type DisplayListener interface {
	Error(objectID, code uint32, message string)
}

// Display is the wl_display singleton, always object 1.
type Display struct {
	proxy
	Listener DisplayListener

	registry *Registry
}

func (display *Display) Dispatch(msg *wire.MessageBuffer) error {
	switch msg.Op() {
	case 0:
		objectID := msg.ReadObject()
		code := msg.ReadUint()
		message := msg.ReadString()
		if err := msg.Err(); err != nil {
			return err
		}

		display.client.err = ProtocolError{Object: objectID, Code: code, Message: message}
		if display.Listener != nil {
			display.Listener.Error(objectID, code, message)
		}
		return nil

	case 1:
		id := msg.ReadUint()
		if err := msg.Err(); err != nil {
			return err
		}

		display.client.objects.Delete(id)
		return nil

	default:
		return display.unknownOp(msg.Op())
	}
}

// Sync asks the server to emit the done event on the returned callback
// once every request sent before it has been handled.
func (display *Display) Sync() (*Callback, error) {
	cb := Callback{}
	display.client.track(&cb, &cb.proxy, &callbackDescriptor, 1)
	err := display.send("sync", 0, object(cb.id))
	if err != nil {
		cb.forget()
		return nil, err
	}
	return &cb, nil
}

// GetRegistry returns the registry, creating it on the first call.
func (display *Display) GetRegistry() (*Registry, error) {
	if display.registry != nil {
		return display.registry, nil
	}

	registry := Registry{globals: make(map[uint32]Interface)}
	display.client.track(&registry, &registry.proxy, &registryDescriptor, 1)
	err := display.send("get_registry", 1, object(registry.id))
	if err != nil {
		registry.forget()
		return nil, err
	}

	display.registry = &registry
	return &registry, nil
}
