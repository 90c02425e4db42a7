// Package pool provides pooled byte buffers for wire frame assembly.
package pool

import "sync"

const (
	// FrameBufferDefaultSize is the initial capacity of a pooled frame buffer.
	FrameBufferDefaultSize = 16 * 1024

	// FrameBufferMaxThreshold is the largest buffer returned to the pool.
	// Oversized buffers are dropped so one huge document does not pin
	// memory for the lifetime of the process.
	FrameBufferMaxThreshold = 256 * 1024
)

// ByteBuffer is an append-oriented byte buffer suitable for pooling.
type ByteBuffer struct {
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes written.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

var frameBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, FrameBufferDefaultSize)}
	},
}

// GetFrameBuffer obtains a reset buffer from the pool.
func GetFrameBuffer() *ByteBuffer {
	bb, _ := frameBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutFrameBuffer returns a buffer to the pool, dropping oversized ones.
func PutFrameBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > FrameBufferMaxThreshold {
		return
	}

	frameBufferPool.Put(bb)
}
