package x64asm

import (
	"encoding/binary"
)

// buffer is a growable byte-append cursor, shared by the code buffer and
// the data (constant pool) buffer.
type buffer struct {
	b []byte
	i int
}

func newBuffer(capacity int) *buffer {
	return &buffer{b: make([]byte, capacity), i: 0}
}

func (b *buffer) extend(length int) {
	if len(b.b)-b.i >= length {
		return
	}
	need := b.i + length
	cap2 := len(b.b) * 2
	if cap2 < need {
		cap2 = need
	}
	if cap2 < 16 {
		cap2 = 16
	}
	bb := make([]byte, cap2)
	copy(bb, b.b[:b.i])
	b.b = bb
}

func (b *buffer) Len() int    { return b.i }
func (b *buffer) Get() []byte { return b.b[:b.i] }

func (b *buffer) Byte(v byte) {
	b.extend(1)
	b.b[b.i] = v
	b.i++
}

func (b *buffer) Bytes(v []byte) {
	b.extend(len(v))
	copy(b.b[b.i:], v)
	b.i += len(v)
}

func (b *buffer) PadZero(n int) {
	b.extend(n)
	for i := 0; i < n; i++ {
		b.b[b.i+i] = 0
	}
	b.i += n
}

func (b *buffer) Int8(v int8) {
	b.Byte(byte(v))
}

func (b *buffer) Int16(v int16) {
	b.extend(2)
	binary.LittleEndian.PutUint16(b.b[b.i:], uint16(v))
	b.i += 2
}

func (b *buffer) Int32(v int32) {
	b.extend(4)
	binary.LittleEndian.PutUint32(b.b[b.i:], uint32(v))
	b.i += 4
}

func (b *buffer) Int64(v int64) {
	b.extend(8)
	binary.LittleEndian.PutUint64(b.b[b.i:], uint64(v))
	b.i += 8
}

// patchInt32 rewrites a previously-emitted 32-bit little-endian slot in
// place. Used by the label and constant-pool patch passes.
func (b *buffer) patchInt32(at int, v int32) {
	binary.LittleEndian.PutUint32(b.b[at:], uint32(v))
}
