package ffi

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Reader decodes fields of one native struct instance. The underlying
// memory may be native-owned (viewed through a base address) or a Go
// scratch buffer; either way every access is bounds-checked against the
// resolved struct size. All values are little-endian, matching the
// engine's supported targets.
//
// A Reader never retains or aliases the memory it decodes: byte-array
// fields are copied out.
type Reader struct {
	buf []byte
	r   *Resolved
}

// NewReader views size bytes of native memory at base as a struct
// instance. The caller is responsible for base outliving the Reader;
// in practice readers are consumed immediately after the native call
// that produced the pointer.
func NewReader(base uintptr, r *Resolved) *Reader {
	if base == 0 {
		panic("ffi: NewReader on null base pointer")
	}
	return &Reader{
		buf: unsafe.Slice((*byte)(unsafe.Pointer(base)), r.Size()),
		r:   r,
	}
}

// ReaderOf decodes a struct instance from a Go buffer, typically a
// scratch buffer previously filled by the engine. The buffer must hold
// at least Resolved.Size bytes.
func ReaderOf(buf []byte, r *Resolved) *Reader {
	if len(buf) < r.Size() {
		panic(fmt.Sprintf("ffi: buffer %d bytes, struct %s needs %d",
			len(buf), r.Name(), r.Size()))
	}
	return &Reader{buf: buf, r: r}
}

// slot bounds-checks and returns the raw bytes of the named field,
// verifying the field kind. Kind mismatches and out-of-range offsets
// are layout bugs: they panic rather than return garbage.
func (rd *Reader) slot(name string, want Kind) []byte {
	f, off := rd.r.field(name)
	if f.Kind != want {
		panic(fmt.Sprintf("ffi: field %s.%s is %s, read as %s",
			rd.r.Name(), name, f.Kind, want))
	}
	n := f.Len
	if want != Bytes {
		n = f.Kind.width(rd.r.Width())
	}
	if off+n > len(rd.buf) {
		panic(fmt.Sprintf("ffi: field %s.%s [%d:%d] exceeds buffer of %d",
			rd.r.Name(), name, off, off+n, len(rd.buf)))
	}
	return rd.buf[off : off+n]
}

// Uint8 reads an unsigned 8-bit field.
func (rd *Reader) Uint8(name string) uint8 {
	return rd.slot(name, Uint8)[0]
}

// Int8 reads a signed 8-bit field.
func (rd *Reader) Int8(name string) int8 {
	return int8(rd.slot(name, Int8)[0])
}

// Uint16 reads an unsigned 16-bit field.
func (rd *Reader) Uint16(name string) uint16 {
	return binary.LittleEndian.Uint16(rd.slot(name, Uint16))
}

// Int16 reads a signed 16-bit field.
func (rd *Reader) Int16(name string) int16 {
	return int16(binary.LittleEndian.Uint16(rd.slot(name, Int16)))
}

// Uint32 reads an unsigned 32-bit field.
func (rd *Reader) Uint32(name string) uint32 {
	return binary.LittleEndian.Uint32(rd.slot(name, Uint32))
}

// Int32 reads a signed 32-bit field.
func (rd *Reader) Int32(name string) int32 {
	return int32(binary.LittleEndian.Uint32(rd.slot(name, Int32)))
}

// Uint64 reads an unsigned 64-bit field.
func (rd *Reader) Uint64(name string) uint64 {
	return binary.LittleEndian.Uint64(rd.slot(name, Uint64))
}

// Int64 reads a signed 64-bit field.
func (rd *Reader) Int64(name string) int64 {
	return int64(binary.LittleEndian.Uint64(rd.slot(name, Int64)))
}

// Usize reads a native size_t field, widened to uint64.
func (rd *Reader) Usize(name string) uint64 {
	b := rd.slot(name, Size)
	if rd.r.Width() == Width32 {
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

// Pointer reads an embedded pointer field. Zero means null.
func (rd *Reader) Pointer(name string) uintptr {
	f, off := rd.r.field(name)
	if f.Kind != Pointer {
		panic(fmt.Sprintf("ffi: field %s.%s is %s, read as pointer",
			rd.r.Name(), name, f.Kind))
	}
	b := rd.buf[off : off+int(rd.r.Width())]
	if rd.r.Width() == Width32 {
		return uintptr(binary.LittleEndian.Uint32(b))
	}
	return uintptr(binary.LittleEndian.Uint64(b))
}

// Bytes copies out a fixed-size byte-array field.
func (rd *Reader) Bytes(name string) []byte {
	src := rd.slot(name, Bytes)
	out := make([]byte, len(src))
	copy(out, src)
	return out
}
