// Package pool provides pooled, growable byte buffers for the append-only
// writers used throughout the core (bytecode emitter, data section).
package pool

import (
	"io"
	"sync"
)

// Default sizes for the two pools this package maintains. EmitterBufferDefaultSize
// matches the 512-byte capacity hint spec.md §4.5 calls out as covering a typical
// single-shader program without reallocation. SectionBufferDefaultSize is sized for
// the larger concatenation buffer used by the data section.
const (
	EmitterBufferDefaultSize  = 512              // bytes; spec.md §4.5 default capacity hint
	EmitterBufferMaxThreshold = 1024 * 64         // 64KiB
	SectionBufferDefaultSize  = 1024 * 16         // 16KiB
	SectionBufferMaxThreshold = 1024 * 1024 * 4   // 4MiB
)

// ByteBuffer is a thin growable wrapper over a byte slice. Growth never shrinks
// in place and commits bytes only via append, so a caller that reserves
// capacity and never calls MustWrite/Write leaves the buffer untouched --
// this is what lets emitters snapshot a length, attempt an instruction, and
// truncate back to the snapshot on failure (spec.md §5).
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Truncate shrinks the buffer back to n bytes, discarding anything written
// after that point. Used to roll back a partially-written instruction.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For buffers of capacity up to 4*EmitterBufferDefaultSize, grow by
//     EmitterBufferDefaultSize, whichever pool the buffer came from.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage
//     and reallocation cost.
//   - In either case, grow by at least requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	growBy := EmitterBufferDefaultSize
	if cap(bb.B) > 4*EmitterBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers. The pool can be
// configured with a maximum size threshold to avoid retaining overly large
// buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat.
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	emitterPool = NewByteBufferPool(EmitterBufferDefaultSize, EmitterBufferMaxThreshold)
	sectionPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
)

// GetEmitterBuffer retrieves a ByteBuffer from the default emitter pool.
func GetEmitterBuffer() *ByteBuffer {
	return emitterPool.Get()
}

// PutEmitterBuffer returns a ByteBuffer to the default emitter pool.
func PutEmitterBuffer(bb *ByteBuffer) {
	emitterPool.Put(bb)
}

// GetSectionBuffer retrieves a ByteBuffer from the default section pool.
func GetSectionBuffer() *ByteBuffer {
	return sectionPool.Get()
}

// PutSectionBuffer returns a ByteBuffer to the default section pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionPool.Put(bb)
}
