package ffi

import (
	"encoding/binary"
	"fmt"
)

// Writer fills a scratch buffer with one native struct instance, the
// inverse of Reader. It is used for "options" structs handed to the
// engine by address: a version tag, scalar flags, OID bytes and
// line-range integers placed at the exact offsets the engine's compiler
// would have chosen.
type Writer struct {
	buf []byte
	r   *Resolved
}

// NewWriter allocates a zeroed buffer sized for the struct and returns
// a writer over it. Zero is the correct initial state for every
// optional field (null pointers, empty OIDs, zero ranges).
func NewWriter(r *Resolved) *Writer {
	return &Writer{buf: make([]byte, r.Size()), r: r}
}

// Buf returns the underlying buffer. Its address is what gets passed
// to the native call; the caller must keep the buffer alive across the
// call (runtime.KeepAlive).
func (wr *Writer) Buf() []byte { return wr.buf }

func (wr *Writer) slot(name string, want Kind) []byte {
	f, off := wr.r.field(name)
	if f.Kind != want {
		panic(fmt.Sprintf("ffi: field %s.%s is %s, written as %s",
			wr.r.Name(), name, f.Kind, want))
	}
	n := f.Len
	if want != Bytes {
		n = f.Kind.width(wr.r.Width())
	}
	return wr.buf[off : off+n]
}

// PutUint8 stores an unsigned 8-bit field.
func (wr *Writer) PutUint8(name string, v uint8) {
	wr.slot(name, Uint8)[0] = v
}

// PutInt8 stores a signed 8-bit field.
func (wr *Writer) PutInt8(name string, v int8) {
	wr.slot(name, Int8)[0] = byte(v)
}

// PutUint16 stores an unsigned 16-bit field.
func (wr *Writer) PutUint16(name string, v uint16) {
	binary.LittleEndian.PutUint16(wr.slot(name, Uint16), v)
}

// PutInt16 stores a signed 16-bit field.
func (wr *Writer) PutInt16(name string, v int16) {
	binary.LittleEndian.PutUint16(wr.slot(name, Int16), uint16(v))
}

// PutUint32 stores an unsigned 32-bit field.
func (wr *Writer) PutUint32(name string, v uint32) {
	binary.LittleEndian.PutUint32(wr.slot(name, Uint32), v)
}

// PutInt32 stores a signed 32-bit field.
func (wr *Writer) PutInt32(name string, v int32) {
	binary.LittleEndian.PutUint32(wr.slot(name, Int32), uint32(v))
}

// PutUint64 stores an unsigned 64-bit field.
func (wr *Writer) PutUint64(name string, v uint64) {
	binary.LittleEndian.PutUint64(wr.slot(name, Uint64), v)
}

// PutInt64 stores a signed 64-bit field.
func (wr *Writer) PutInt64(name string, v int64) {
	binary.LittleEndian.PutUint64(wr.slot(name, Int64), uint64(v))
}

// PutUsize stores a native size_t field. Values exceeding a 32-bit
// size_t on a 32-bit target indicate a caller bug and panic.
func (wr *Writer) PutUsize(name string, v uint64) {
	b := wr.slot(name, Size)
	if wr.r.Width() == Width32 {
		if v > 0xFFFFFFFF {
			panic(fmt.Sprintf("ffi: size value %d overflows 32-bit size_t in %s.%s",
				v, wr.r.Name(), name))
		}
		binary.LittleEndian.PutUint32(b, uint32(v))
		return
	}
	binary.LittleEndian.PutUint64(b, v)
}

// PutPointer stores an embedded pointer field; zero writes null.
func (wr *Writer) PutPointer(name string, p uintptr) {
	f, off := wr.r.field(name)
	if f.Kind != Pointer {
		panic(fmt.Sprintf("ffi: field %s.%s is %s, written as pointer",
			wr.r.Name(), name, f.Kind))
	}
	b := wr.buf[off : off+int(wr.r.Width())]
	if wr.r.Width() == Width32 {
		binary.LittleEndian.PutUint32(b, uint32(p))
		return
	}
	binary.LittleEndian.PutUint64(b, uint64(p))
}

// PutBytes stores a fixed-size byte-array field. The source length
// must match the declared field length exactly.
func (wr *Writer) PutBytes(name string, src []byte) {
	dst := wr.slot(name, Bytes)
	if len(src) != len(dst) {
		panic(fmt.Sprintf("ffi: field %s.%s is %d bytes, got %d",
			wr.r.Name(), name, len(dst), len(src)))
	}
	copy(dst, src)
}
