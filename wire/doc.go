// Package wire implements the binary token frame format.
//
// A frame carries one complete token stream and is laid out as:
//
//	┌─────────────────┬──────────────────────┬──────────┐
//	│ Header (16B)    │ Token payload        │ Footer   │
//	│                 │ (optionally          │ xxhash64 │
//	│                 │  compressed)         │ (8B)     │
//	└─────────────────┴──────────────────────┴──────────┘
//
// Header layout:
//
//	Offset  Size  Field
//	0       4     Magic number "TKN1" (0x544B4E31)
//	4       1     Format version (currently 1)
//	5       1     Flags: bits 0-3 compression type, bit 7 big-endian
//	6       2     Reserved (zero)
//	8       4     Token count
//	12      4     Payload length on wire (after compression)
//
// Multi-byte header fields after the flag byte, and the footer digest, use
// the frame's declared byte order. The footer is the xxhash64 digest of the
// payload exactly as it appears on the wire.
//
// Each token record is a kind byte followed by a kind-specific payload:
// fixed-width scalars in the frame byte order, strings and byte payloads
// length-prefixed with an unsigned varint, structural length hints as a
// signed varint (unknown length encodes as -1), and 128-bit integers as 16
// big-endian two's complement bytes.
//
// Writer is a sink.Sink, so a transcode can stream straight into a frame.
// Reader validates the header and digest up front and then replays tokens.
package wire
