// Package bin contains utilities for dealing with the host-endian
// 32-bit words the wire protocol is made of.
package bin

import (
	"encoding/binary"
	"unsafe"
)

// Order is the host byte order.
var Order binary.ByteOrder = binary.LittleEndian

func init() {
	n := uint32(1)
	b := (*[4]byte)(unsafe.Pointer(&n))
	if b[0] == 0 {
		Order = binary.BigEndian
	}
}

// Bytes returns the host representation of v.
func Bytes[T ~int32 | ~uint32](v T) [4]byte {
	var data [4]byte
	Order.PutUint32(data[:], *(*uint32)(unsafe.Pointer(&v)))
	return data
}

// Value decodes the first four bytes of data.
func Value[T ~int32 | ~uint32](data []byte) T {
	v := Order.Uint32(data)
	return *(*T)(unsafe.Pointer(&v))
}

// Pad returns the number of bytes needed to align length to a word.
func Pad(length uint32) uint32 {
	return (4 - (length % 4)) % 4
}
