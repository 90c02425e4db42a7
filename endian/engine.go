// Package endian provides the byte order abstraction for the token wire
// format.
//
// It unifies encoding/binary's ByteOrder and AppendByteOrder interfaces
// into a single EndianEngine so the wire codec can both read fixed-width
// fields and append them without a temporary buffer. Token frames default
// to little-endian; big-endian is available for interoperability with
// systems that require network byte order.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
//
// binary.LittleEndian and binary.BigEndian both satisfy it, so an engine
// can be passed anywhere a plain binary.ByteOrder is expected. Engines are
// immutable, stateless and safe for concurrent use.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// NativeEndianness determines the host's byte order.
func NativeEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return NativeEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine, the default for
// token frames.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
